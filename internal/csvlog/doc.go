// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

/*
Package csvlog reads the per-day sensor logs written by the monitoring device.

Each file holds one metric for one calendar day and is named
{date}_{metric}.csv, for example 2025-01-01_temperature.csv. The first line
is a header that must name the columns timestamp and message; other columns
are ignored. Timestamps are time-of-day strings (HH:MM:SS) and messages are
the raw values published by the device.

	r, err := csvlog.Open(filepath.Join(dir, csvlog.FileName(date, csvlog.MetricTemperature)))
	if err != nil {
		return err
	}
	defer r.Close()

	for row := range r.Rows() {
		// row.Timestamp, row.Message
	}
	if err := r.Err(); err != nil {
		return err
	}

A file that does not exist yields a reader with no rows. Records with the
wrong number of fields are skipped with a warning so that one damaged line
never hides the rest of the day.
*/
package csvlog
