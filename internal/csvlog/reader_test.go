// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package csvlog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func collect(t *testing.T, r *Reader) []Row {
	t.Helper()
	var rows []Row
	for row := range r.Rows() {
		rows = append(rows, row)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	return rows
}

func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		date, metric, want string
	}{
		{"2025-01-01", MetricTemperature, "2025-01-01_temperature.csv"},
		{"2025-01-01", MetricAlarmStatus, "2025-01-01_alarm-status.csv"},
		{"2024-12-31", MetricHumidity, "2024-12-31_humidity.csv"},
	}
	for _, tt := range tests {
		if got := FileName(tt.date, tt.metric); got != tt.want {
			t.Errorf("FileName(%q, %q) = %q, want %q", tt.date, tt.metric, got, tt.want)
		}
	}
}

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	r, err := Open(filepath.Join(t.TempDir(), "2025-01-01_temperature.csv"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	if r.Exists() {
		t.Error("Exists() = true for a missing file")
	}
	if rows := collect(t, r); len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestOpen_EmptyFile(t *testing.T) {
	t.Parallel()

	r, err := Open(writeFile(t, "empty.csv", ""))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	if !r.Exists() {
		t.Error("Exists() = false for an empty file")
	}
	if rows := collect(t, r); len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestOpen_MissingHeaderColumn(t *testing.T) {
	t.Parallel()

	_, err := Open(writeFile(t, "bad.csv", "time,message\n10:00:00,21.5\n"))
	if !errors.Is(err, ErrMissingHeader) {
		t.Fatalf("Open() error = %v, want ErrMissingHeader", err)
	}
}

func TestRows(t *testing.T) {
	t.Parallel()

	content := "\ufefftimestamp,message\n" +
		"10:00:00,21.5\n" +
		"10:05:00\n" +
		"10:10:00,22.0,extra\n" +
		"10:15:00,abc\n" +
		"10:20:00,22.5\n"
	r, err := Open(writeFile(t, "2025-01-01_temperature.csv", content))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	rows := collect(t, r)
	want := []Row{
		{Line: 2, Timestamp: "10:00:00", Message: "21.5"},
		{Line: 5, Timestamp: "10:15:00", Message: "abc"},
		{Line: 6, Timestamp: "10:20:00", Message: "22.5"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows (%+v), want %d", len(rows), rows, len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("rows[%d] = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestRows_ColumnOrderFollowsHeader(t *testing.T) {
	t.Parallel()

	r, err := Open(writeFile(t, "status.csv", "message,timestamp\narmed,08:00:00\n"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	rows := collect(t, r)
	if len(rows) != 1 || rows[0].Timestamp != "08:00:00" || rows[0].Message != "armed" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestRows_NotRestartable(t *testing.T) {
	t.Parallel()

	r, err := Open(writeFile(t, "t.csv", "timestamp,message\n10:00:00,1\n10:01:00,2\n"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	for range r.Rows() {
		break
	}
	if rows := collect(t, r); len(rows) != 0 {
		t.Errorf("second iteration yielded %d rows, want 0", len(rows))
	}
}

func TestClose_Idempotent(t *testing.T) {
	t.Parallel()

	r, err := Open(writeFile(t, "t.csv", "timestamp,message\n"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
