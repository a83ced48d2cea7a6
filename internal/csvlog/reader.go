// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package csvlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/tomtom215/domsafe/internal/logging"
)

// Metric names used in log file names.
const (
	MetricTemperature = "temperature"
	MetricHumidity    = "humidity"
	MetricAlarmStatus = "alarm-status"
)

const (
	columnTimestamp = "timestamp"
	columnMessage   = "message"
)

// ErrMissingHeader is returned when the header lacks a required column.
var ErrMissingHeader = errors.New("csv header missing required column")

// Row is one logged value.
type Row struct {
	Line      int
	Timestamp string
	Message   string
}

// FileName returns the log file name for a date (YYYY-MM-DD) and metric.
func FileName(date, metric string) string {
	return date + "_" + metric + ".csv"
}

// Reader yields the rows of a single log file.
type Reader struct {
	path   string
	file   *os.File
	csv    *csv.Reader
	fields int
	tsIdx  int
	msgIdx int
	err    error
	exists bool
	used   bool
}

// Open opens a log file and reads its header. A missing file is not an
// error: the returned reader simply has no rows.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path) //nolint:gosec // path is built from the configured logs directory
	if errors.Is(err, os.ErrNotExist) {
		return &Reader{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	r := &Reader{path: path, file: f, exists: true, tsIdx: -1, msgIdx: -1}
	r.csv = csv.NewReader(f)
	r.csv.FieldsPerRecord = -1
	r.csv.ReuseRecord = true

	header, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		// Empty file: no header and no rows.
		_ = f.Close()
		return &Reader{path: path, exists: true}, nil
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	r.fields = len(header)
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		switch strings.TrimSpace(name) {
		case columnTimestamp:
			r.tsIdx = i
		case columnMessage:
			r.msgIdx = i
		}
	}
	if r.tsIdx < 0 || r.msgIdx < 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w (want %q and %q)", path, ErrMissingHeader, columnTimestamp, columnMessage)
	}
	return r, nil
}

// Exists reports whether the file was present when opened.
func (r *Reader) Exists() bool {
	return r.exists
}

// Rows returns a single-use sequence over the data rows. Iterating a second
// time yields nothing.
func (r *Reader) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		if r.file == nil || r.used {
			return
		}
		r.used = true

		for {
			record, err := r.csv.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				var parseErr *csv.ParseError
				if errors.As(err, &parseErr) {
					logging.Warn().Str("file", r.path).Int("line", parseErr.Line).Err(err).Msg("Skipping malformed CSV record")
					continue
				}
				r.err = fmt.Errorf("read %s: %w", r.path, err)
				return
			}
			line, _ := r.csv.FieldPos(0)
			if len(record) != r.fields {
				logging.Warn().
					Str("file", r.path).
					Int("line", line).
					Int("fields", len(record)).
					Int("expected", r.fields).
					Msg("Skipping CSV record with wrong field count")
				continue
			}

			row := Row{
				Line:      line,
				Timestamp: record[r.tsIdx],
				Message:   record[r.msgIdx],
			}
			if !yield(row) {
				return
			}
		}
	}
}

// Err returns the first non-recoverable read error seen during iteration.
func (r *Reader) Err() error {
	return r.err
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
