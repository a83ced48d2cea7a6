// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/domsafe/internal/logging"
	"github.com/tomtom215/domsafe/internal/metrics"
	"github.com/tomtom215/domsafe/internal/models"
)

const breakerName = "feed-api"

// CircuitBreakerClient wraps an API with the circuit breaker pattern so a
// broker outage stops costing a full timeout per dashboard poll.
//
// Settings:
//   - at most 3 trial requests while half-open
//   - counts reset every minute while closed
//   - 30 seconds open before a trial request is let through
//   - opens at a 60% failure rate once 10 requests have been seen
type CircuitBreakerClient struct {
	api  API
	cb   *gobreaker.CircuitBreaker[interface{}]
	name string
}

// NewCircuitBreakerClient wraps api with a circuit breaker.
func NewCircuitBreakerClient(api API) *CircuitBreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: isBrokerHealthy,

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{api: api, cb: cb, name: breakerName}
}

// isBrokerHealthy decides which errors count against the breaker. Client
// errors (unknown feed, bad key) and local throttling say nothing about the
// broker's availability.
func isBrokerHealthy(err error) bool {
	if err == nil || errors.Is(err, ErrRateLimited) || errors.Is(err, context.Canceled) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode < http.StatusInternalServerError &&
			statusErr.StatusCode != http.StatusTooManyRequests
	}
	return false
}

func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			return nil, fmt.Errorf("feed circuit breaker: %w", err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		counts := cbc.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)
	return result, nil
}

// State returns the current breaker state.
func (cbc *CircuitBreakerClient) State() gobreaker.State {
	return cbc.cb.State()
}

// Latest returns a feed's latest value with circuit breaker protection.
func (cbc *CircuitBreakerClient) Latest(ctx context.Context, feedKey string) (*models.FeedValue, error) {
	result, err := cbc.execute(func() (interface{}, error) {
		return cbc.api.Latest(ctx, feedKey)
	})
	if err != nil {
		return nil, err
	}
	value, ok := result.(*models.FeedValue)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return value, nil
}

// Send pushes a value with circuit breaker protection.
func (cbc *CircuitBreakerClient) Send(ctx context.Context, feedKey, value string) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.api.Send(ctx, feedKey, value)
	})
	return err
}

// ListFeeds lists feeds with circuit breaker protection.
func (cbc *CircuitBreakerClient) ListFeeds(ctx context.Context) ([]models.FeedInfo, error) {
	result, err := cbc.execute(func() (interface{}, error) {
		return cbc.api.ListFeeds(ctx)
	})
	if err != nil {
		return nil, err
	}
	feeds, ok := result.([]models.FeedInfo)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return feeds, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
