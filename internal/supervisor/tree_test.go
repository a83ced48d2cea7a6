// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

// testService fails the first failures times it is started, then blocks
// until its context is canceled.
type testService struct {
	failures int32
	starts   atomic.Int32
	stops    atomic.Int32
	started  chan struct{}
}

func newTestService(failures int32) *testService {
	return &testService{failures: failures, started: make(chan struct{}, 16)}
}

func (s *testService) Serve(ctx context.Context) error {
	n := s.starts.Add(1)
	defer s.stops.Add(1)
	s.started <- struct{}{}
	if n <= s.failures {
		return errors.New("boom")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *testService) String() string { return "test-service" }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitStarted(t *testing.T, s *testService) {
	t.Helper()
	select {
	case <-s.started:
	case <-time.After(5 * time.Second):
		t.Fatal("service did not start")
	}
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	t.Parallel()

	tree := NewSupervisorTree(discardLogger(), TreeConfig{FailureBackoff: time.Second})
	if tree.config.FailureThreshold != 5.0 {
		t.Errorf("FailureThreshold = %v, want 5", tree.config.FailureThreshold)
	}
	if tree.config.FailureDecay != 30.0 {
		t.Errorf("FailureDecay = %v, want 30", tree.config.FailureDecay)
	}
	if tree.config.FailureBackoff != time.Second {
		t.Errorf("FailureBackoff = %v, want explicit 1s kept", tree.config.FailureBackoff)
	}
	if tree.config.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", tree.config.ShutdownTimeout)
	}
}

func TestSupervisorTree_ServeAndStop(t *testing.T) {
	t.Parallel()

	tree := NewSupervisorTree(discardLogger(), TreeConfig{ShutdownTimeout: time.Second})
	svc := newTestService(0)
	tree.AddAPIService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	done := tree.ServeBackground(ctx)
	waitStarted(t, svc)

	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want nil or context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("tree did not stop")
	}

	if got := svc.stops.Load(); got != 1 {
		t.Errorf("stops = %d, want 1", got)
	}
	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport() error = %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services = %v, want none", report)
	}
}

func TestSupervisorTree_RestartsFailedService(t *testing.T) {
	t.Parallel()

	tree := NewSupervisorTree(discardLogger(), TreeConfig{
		FailureBackoff:  10 * time.Millisecond,
		ShutdownTimeout: time.Second,
	})
	svc := newTestService(1)
	tree.AddAPIService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := tree.ServeBackground(ctx)

	waitStarted(t, svc)
	waitStarted(t, svc)
	if got := svc.starts.Load(); got < 2 {
		t.Errorf("starts = %d, want a restart after failure", got)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("tree did not stop")
	}
}
