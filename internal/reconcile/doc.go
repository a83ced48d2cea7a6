// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

/*
Package reconcile backfills the store from the device's daily CSV logs.

The device appends one row per reading to a file per metric and day
(see package csvlog). The Reconciler reads those files and inserts every
valid row into the store. Inserts skip rows that already exist, so a day can
be synced any number of times and the store ends up with exactly one row per
logged reading.

# Passes

Each call handles one (date, metric) file:

  - SyncSensorData reads {logsDir}/{date}_temperature.csv into the
    temperature table with unit °C.
  - SyncSecurityEvents reads {logsDir}/{date}_alarm-status.csv into the
    status table. A status of "alert" becomes an alert event, anything else
    a state change, with details "System {status}".

Humidity is logged by the device but has no pass yet; the API serves the
humidity table for stores filled by other means.

A file is processed in one transaction. A missing file counts as zero rows.
A row whose timestamp or value cannot be parsed is logged and skipped. A
store error rolls the transaction back and fails only that pass.

# Dates

SyncDate runs both passes for one YYYY-MM-DD date, SyncToday for the local
current date, and SyncDateRange for every calendar day from start to end
inclusive, in ascending order. A failed day is logged and the range moves
on to the next one.

# Progress

Every pass records its outcome in a Progress tracker. BadgerProgress keeps
the history on disk so `sync -status` can report which files were synced,
missing or failed; InMemoryProgress is used when no path is configured.
*/
package reconcile
