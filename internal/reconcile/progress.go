// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package reconcile

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// progressKeyPrefix prefixes every per-file record. Keys sort by date, then metric.
const progressKeyPrefix = "sync:file:"

// Progress stores the latest outcome of each (date, metric) pass.
type Progress interface {
	Record(ctx context.Context, rec FileRecord) error
	Load(ctx context.Context) ([]FileRecord, error)
	Clear(ctx context.Context) error
}

func progressKey(date, metric string) []byte {
	return []byte(progressKeyPrefix + date + ":" + metric)
}

// BadgerProgress implements Progress using BadgerDB for persistence.
type BadgerProgress struct {
	db *badger.DB
}

// OpenBadgerProgress opens (or creates) a progress store in dir.
func OpenBadgerProgress(dir string) (*BadgerProgress, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.ValueLogFileSize = 16 << 20
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for sync progress: %w", err)
	}
	return &BadgerProgress{db: db}, nil
}

// NewBadgerProgress creates a progress tracker using an open BadgerDB instance.
func NewBadgerProgress(db *badger.DB) *BadgerProgress {
	return &BadgerProgress{db: db}
}

// Record saves rec, replacing any earlier record for the same file.
func (p *BadgerProgress) Record(_ context.Context, rec FileRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Set(progressKey(rec.Date, rec.Metric), data)
	})
}

// Load returns all records ordered by date and metric.
func (p *BadgerProgress) Load(_ context.Context) ([]FileRecord, error) {
	records := make([]FileRecord, 0)

	err := p.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(progressKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec FileRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return records, nil
}

// Clear removes every record.
func (p *BadgerProgress) Clear(_ context.Context) error {
	if err := p.db.DropPrefix([]byte(progressKeyPrefix)); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

// Close closes the underlying BadgerDB.
func (p *BadgerProgress) Close() error {
	return p.db.Close()
}

// InMemoryProgress implements Progress in memory.
type InMemoryProgress struct {
	mu      sync.Mutex
	records map[string]FileRecord
}

// NewInMemoryProgress creates an empty in-memory tracker.
func NewInMemoryProgress() *InMemoryProgress {
	return &InMemoryProgress{records: make(map[string]FileRecord)}
}

// Record stores rec.
func (p *InMemoryProgress) Record(_ context.Context, rec FileRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records[string(progressKey(rec.Date, rec.Metric))] = rec
	return nil
}

// Load returns all records ordered by date and metric.
func (p *InMemoryProgress) Load(_ context.Context) ([]FileRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	keys := make([]string, 0, len(p.records))
	for k := range p.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	records := make([]FileRecord, 0, len(keys))
	for _, k := range keys {
		records = append(records, p.records[k])
	}
	return records, nil
}

// Clear removes every record.
func (p *InMemoryProgress) Clear(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = make(map[string]FileRecord)
	return nil
}
