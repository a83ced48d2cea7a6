// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package reconcile

import (
	"time"
)

// File outcomes recorded in metrics and progress.
const (
	OutcomeCommitted = "committed"
	OutcomeMissing   = "missing"
	OutcomeFailed    = "failed"
)

// FileStats holds statistics about one (date, metric) pass.
type FileStats struct {
	// Date is the log date (YYYY-MM-DD).
	Date string

	// Metric is the csvlog metric name.
	Metric string

	// Path is the resolved log file path.
	Path string

	// Missing is true when the log file does not exist.
	Missing bool

	// Read is the number of rows read from the file.
	Read int

	// Inserted is the number of rows added to the store.
	Inserted int

	// Duplicates is the number of rows already present in the store.
	Duplicates int

	// Skipped is the number of rows that could not be converted.
	Skipped int

	// StartTime is when the pass started.
	StartTime time.Time

	// EndTime is when the pass finished (zero if still running).
	EndTime time.Time
}

// Duration returns how long the pass took.
func (s *FileStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// DayStats holds both passes for one date.
type DayStats struct {
	Date    string
	Sensors *FileStats
	Events  *FileStats
}

// Inserted returns the rows added by both passes.
func (s *DayStats) Inserted() int {
	total := 0
	if s.Sensors != nil {
		total += s.Sensors.Inserted
	}
	if s.Events != nil {
		total += s.Events.Inserted
	}
	return total
}

// RangeStats holds statistics about a date range sync.
type RangeStats struct {
	Start string
	End   string

	// Days lists every date attempted, in order.
	Days []string

	// Failed lists the dates whose sync returned an error.
	Failed []string

	Inserted   int
	Duplicates int
	Skipped    int

	StartTime time.Time
	EndTime   time.Time
}

// Duration returns how long the range sync took.
func (s *RangeStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

func (s *RangeStats) add(day *DayStats) {
	for _, fs := range []*FileStats{day.Sensors, day.Events} {
		if fs == nil {
			continue
		}
		s.Inserted += fs.Inserted
		s.Duplicates += fs.Duplicates
		s.Skipped += fs.Skipped
	}
}

// FileRecord is the persisted outcome of one pass.
type FileRecord struct {
	Date       string    `json:"date"`
	Metric     string    `json:"metric"`
	Outcome    string    `json:"outcome"`
	Inserted   int       `json:"inserted"`
	Duplicates int       `json:"duplicates"`
	Skipped    int       `json:"skipped"`
	Error      string    `json:"error,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

func newFileRecord(stats *FileStats, outcome string, err error) FileRecord {
	rec := FileRecord{
		Date:       stats.Date,
		Metric:     stats.Metric,
		Outcome:    outcome,
		Inserted:   stats.Inserted,
		Duplicates: stats.Duplicates,
		Skipped:    stats.Skipped,
		FinishedAt: stats.EndTime,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	return rec
}
