// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*HTTPServerService)(nil)

// fakeServer blocks in ListenAndServe until Shutdown is called, unless
// listenErr is set.
type fakeServer struct {
	listenErr   error
	shutdownErr error
	listens     atomic.Int32
	shutdowns   atomic.Int32
	listening   chan struct{}
	stop        chan struct{}
	stopOnce    sync.Once
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		listening: make(chan struct{}, 4),
		stop:      make(chan struct{}),
	}
}

func (f *fakeServer) ListenAndServe() error {
	f.listens.Add(1)
	f.listening <- struct{}{}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	f.stopOnce.Do(func() { close(f.stop) })
	return f.shutdownErr
}

func (f *fakeServer) waitListening(t *testing.T) {
	t.Helper()
	select {
	case <-f.listening:
	case <-time.After(2 * time.Second):
		t.Fatal("ListenAndServe was not called")
	}
}

func TestNewHTTPServerService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{"explicit", 3 * time.Second, 3 * time.Second},
		{"zero", 0, defaultShutdownTimeout},
		{"negative", -time.Second, defaultShutdownTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewHTTPServerService(newFakeServer(), ":3000", tt.timeout)
			if svc.shutdownTimeout != tt.want {
				t.Errorf("shutdownTimeout = %v, want %v", svc.shutdownTimeout, tt.want)
			}
			if svc.String() != "dashboard-http" {
				t.Errorf("String() = %q, want dashboard-http", svc.String())
			}
		})
	}
}

func TestHTTPServerService_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	server := newFakeServer()
	svc := NewHTTPServerService(server, ":3000", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	server.waitListening(t)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if got := server.shutdowns.Load(); got != 1 {
		t.Errorf("Shutdown calls = %d, want 1", got)
	}
}

func TestHTTPServerService_ListenFailure(t *testing.T) {
	t.Parallel()

	bindErr := errors.New("bind: address already in use")
	server := newFakeServer()
	server.listenErr = bindErr
	svc := NewHTTPServerService(server, ":3000", time.Second)

	err := svc.Serve(context.Background())
	if !errors.Is(err, bindErr) {
		t.Errorf("Serve() = %v, want wrapped bind error", err)
	}
	if got := server.shutdowns.Load(); got != 0 {
		t.Errorf("Shutdown calls = %d, want 0", got)
	}
}

func TestHTTPServerService_ShutdownFailure(t *testing.T) {
	t.Parallel()

	drainErr := errors.New("context deadline exceeded")
	server := newFakeServer()
	server.shutdownErr = drainErr
	svc := NewHTTPServerService(server, ":3000", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	server.waitListening(t)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, drainErr) {
			t.Errorf("Serve() = %v, want wrapped shutdown error", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestHTTPServerService_UnderSupervisor(t *testing.T) {
	t.Parallel()

	server := newFakeServer()
	sup := suture.New("test", suture.Spec{
		FailureBackoff: 10 * time.Millisecond,
		Timeout:        2 * time.Second,
	})
	sup.Add(NewHTTPServerService(server, ":3000", time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	done := sup.ServeBackground(ctx)
	server.waitListening(t)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop")
	}
	if server.shutdowns.Load() < 1 {
		t.Error("Shutdown was not called")
	}
}
