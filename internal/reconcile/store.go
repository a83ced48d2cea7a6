// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package reconcile

import (
	"context"

	"github.com/tomtom215/domsafe/internal/database"
	"github.com/tomtom215/domsafe/internal/models"
)

// Batch is one write transaction against the store.
type Batch interface {
	InsertReading(ctx context.Context, r models.SensorReading) (int64, error)
	InsertSecurityEvent(ctx context.Context, ev models.SecurityEvent) (int64, error)
	Commit() error
	Rollback() error
}

// Store opens write transactions.
type Store interface {
	BeginBatch(ctx context.Context) (Batch, error)
}

type dbStore struct {
	db *database.DB
}

// NewStore adapts a database.DB to Store.
func NewStore(db *database.DB) Store {
	return dbStore{db: db}
}

func (s dbStore) BeginBatch(ctx context.Context) (Batch, error) {
	b, err := s.db.BeginBatch(ctx)
	if err != nil {
		return nil, err
	}
	return b, nil
}
