// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package reconcile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/domsafe/internal/config"
	"github.com/tomtom215/domsafe/internal/csvlog"
	"github.com/tomtom215/domsafe/internal/metrics"
	"github.com/tomtom215/domsafe/internal/models"
)

const (
	// DateLayout is the format of log dates and CLI arguments.
	DateLayout = "2006-01-02"

	timestampLayout = "2006-01-02 15:04:05"
)

var (
	// ErrInvalidDate is returned for a date that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRange is returned when the range end precedes its start.
	ErrInvalidRange = errors.New("invalid date range")

	errInvalidRow = errors.New("invalid row")
)

// Reconciler copies CSV log rows into the store.
type Reconciler struct {
	store    Store
	logsDir  string
	progress Progress
	logger   zerolog.Logger
	now      func() time.Time
}

// New creates a Reconciler reading logs from cfg.LogsDir. A nil progress
// tracker is replaced by an in-memory one.
func New(store Store, cfg *config.SyncConfig, progress Progress, logger zerolog.Logger) *Reconciler {
	if progress == nil {
		progress = NewInMemoryProgress()
	}
	return &Reconciler{
		store:    store,
		logsDir:  cfg.LogsDir,
		progress: progress,
		logger:   logger,
		now:      time.Now,
	}
}

// rowWriter converts one CSV row and inserts it. Conversion failures are
// wrapped in errInvalidRow.
type rowWriter func(ctx context.Context, b Batch, date string, row csvlog.Row) (int64, error)

// SyncSensorData syncs the temperature log for date.
func (r *Reconciler) SyncSensorData(ctx context.Context, date string) (*FileStats, error) {
	stats, err := r.syncFile(ctx, date, csvlog.MetricTemperature, writeTemperature)
	if err == nil {
		r.logger.Info().Str("date", date).Int("inserted", stats.Inserted).
			Msgf("Synced %d sensor readings for %s", stats.Inserted, date)
	}
	return stats, err
}

// SyncSecurityEvents syncs the alarm status log for date.
func (r *Reconciler) SyncSecurityEvents(ctx context.Context, date string) (*FileStats, error) {
	stats, err := r.syncFile(ctx, date, csvlog.MetricAlarmStatus, writeSecurityEvent)
	if err == nil {
		r.logger.Info().Str("date", date).Int("inserted", stats.Inserted).
			Msgf("Synced %d security events for %s", stats.Inserted, date)
	}
	return stats, err
}

// SyncDate runs both passes for date. The second pass runs even when the
// first fails; their errors are joined.
func (r *Reconciler) SyncDate(ctx context.Context, date string) (*DayStats, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}

	start := time.Now()
	day := &DayStats{Date: date}

	var sensorErr, eventErr error
	day.Sensors, sensorErr = r.SyncSensorData(ctx, date)
	day.Events, eventErr = r.SyncSecurityEvents(ctx, date)

	err := errors.Join(sensorErr, eventErr)
	metrics.RecordSyncDay(time.Since(start), err != nil)
	return day, err
}

// SyncToday runs both passes for the current local date.
func (r *Reconciler) SyncToday(ctx context.Context) (*DayStats, error) {
	return r.SyncDate(ctx, r.now().Format(DateLayout))
}

// SyncDateRange syncs every day from start to end inclusive, in order. A
// failed day is logged and recorded in the stats; the remaining days still
// run. Only invalid arguments or context cancellation return an error.
func (r *Reconciler) SyncDateRange(ctx context.Context, start, end string) (*RangeStats, error) {
	first, err := parseDate(start)
	if err != nil {
		return nil, err
	}
	last, err := parseDate(end)
	if err != nil {
		return nil, err
	}
	if last.Before(first) {
		return nil, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, start, end)
	}

	stats := &RangeStats{Start: start, End: end, StartTime: time.Now()}
	defer func() { stats.EndTime = time.Now() }()

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		date := d.Format(DateLayout)
		stats.Days = append(stats.Days, date)

		day, err := r.SyncDate(ctx, date)
		if day != nil {
			stats.add(day)
		}
		if err != nil {
			stats.Failed = append(stats.Failed, date)
			r.logger.Error().Err(err).Str("date", date).Msg("Sync failed for date, continuing with next")
		}
	}

	r.logger.Info().
		Str("start", start).
		Str("end", end).
		Int("days", len(stats.Days)).
		Int("failed", len(stats.Failed)).
		Int("inserted", stats.Inserted).
		Msg("Date range sync finished")
	return stats, nil
}

// syncFile runs one pass over {logsDir}/{date}_{metric}.csv inside a single
// transaction.
func (r *Reconciler) syncFile(ctx context.Context, date, metric string, write rowWriter) (stats *FileStats, err error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}

	stats = &FileStats{
		Date:      date,
		Metric:    metric,
		Path:      filepath.Join(r.logsDir, csvlog.FileName(date, metric)),
		StartTime: time.Now(),
	}
	log := r.logger.With().Str("file", stats.Path).Logger()

	defer func() {
		stats.EndTime = time.Now()
		outcome := OutcomeCommitted
		switch {
		case err != nil:
			outcome = OutcomeFailed
		case stats.Missing:
			outcome = OutcomeMissing
		}
		metrics.RecordSyncFile(metric, outcome, stats.Inserted, stats.Duplicates, stats.Skipped)
		if perr := r.progress.Record(context.WithoutCancel(ctx), newFileRecord(stats, outcome, err)); perr != nil {
			log.Warn().Err(perr).Msg("Failed to record sync progress")
		}
	}()

	reader, err := csvlog.Open(stats.Path)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := reader.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("Failed to close log file")
		}
	}()

	if !reader.Exists() {
		stats.Missing = true
		log.Info().Msg("No log file for date, nothing to sync")
		return stats, nil
	}

	batch, err := r.store.BeginBatch(ctx)
	if err != nil {
		return stats, fmt.Errorf("store unavailable for %s: %w", stats.Path, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rerr := batch.Rollback(); rerr != nil {
			log.Warn().Err(rerr).Msg("Failed to roll back sync transaction")
		}
	}()

	for row := range reader.Rows() {
		stats.Read++

		n, werr := write(ctx, batch, date, row)
		if errors.Is(werr, errInvalidRow) {
			stats.Skipped++
			log.Warn().Int("line", row.Line).Err(werr).Msg("Skipping invalid log row")
			continue
		}
		if werr != nil {
			return stats, fmt.Errorf("insert %s line %d: %w", stats.Path, row.Line, werr)
		}
		if n > 0 {
			stats.Inserted += int(n)
		} else {
			stats.Duplicates++
		}
	}
	if err := reader.Err(); err != nil {
		return stats, err
	}

	if err := batch.Commit(); err != nil {
		return stats, fmt.Errorf("commit %s: %w", stats.Path, err)
	}
	committed = true

	log.Debug().
		Int("read", stats.Read).
		Int("inserted", stats.Inserted).
		Int("duplicates", stats.Duplicates).
		Int("skipped", stats.Skipped).
		Dur("duration", stats.Duration()).
		Msg("Log file committed")
	return stats, nil
}

func writeTemperature(ctx context.Context, b Batch, date string, row csvlog.Row) (int64, error) {
	reading, err := parseReading(models.SensorTemperature, date, row)
	if err != nil {
		return 0, err
	}
	return b.InsertReading(ctx, reading)
}

func writeSecurityEvent(ctx context.Context, b Batch, date string, row csvlog.Row) (int64, error) {
	event, err := parseSecurityEvent(date, row)
	if err != nil {
		return 0, err
	}
	return b.InsertSecurityEvent(ctx, event)
}

func parseReading(sensor models.SensorType, date string, row csvlog.Row) (models.SensorReading, error) {
	ts, err := parseTimestamp(date, row.Timestamp)
	if err != nil {
		return models.SensorReading{}, err
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(row.Message), 64)
	if err != nil {
		return models.SensorReading{}, fmt.Errorf("%w: value %q is not a number", errInvalidRow, row.Message)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return models.SensorReading{}, fmt.Errorf("%w: value %q is not finite", errInvalidRow, row.Message)
	}

	return models.SensorReading{
		SensorType: sensor,
		Timestamp:  ts,
		Value:      value,
		Unit:       sensor.Unit(),
	}, nil
}

func parseSecurityEvent(date string, row csvlog.Row) (models.SecurityEvent, error) {
	ts, err := parseTimestamp(date, row.Timestamp)
	if err != nil {
		return models.SecurityEvent{}, err
	}

	status := strings.TrimSpace(row.Message)
	if status == "" {
		return models.SecurityEvent{}, fmt.Errorf("%w: empty status", errInvalidRow)
	}
	return models.NewSecurityEvent(ts, status), nil
}

func parseTimestamp(date, timeOfDay string) (time.Time, error) {
	ts, err := time.Parse(timestampLayout, date+" "+strings.TrimSpace(timeOfDay))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %v", errInvalidRow, timeOfDay, err)
	}
	return ts, nil
}

func parseDate(date string) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: want YYYY-MM-DD", ErrInvalidDate, date)
	}
	return d, nil
}
