// Package resilience wraps outbound HTTP calls to upstream providers with
// circuit breakers, timeouts, and bounded retries.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// Trip thresholds used by DefaultReadyToTrip.
const (
	minTripRequests        = 5
	tripFailureRatio       = 0.5
	maxConsecutiveFailures = 3
)

// CircuitBreakerConfig holds configuration for the circuit breaker.
type CircuitBreakerConfig struct {
	// Name identifies the breaker in logs and the registry.
	Name string

	// MaxRequests is the number of probes allowed while half-open.
	MaxRequests uint32

	// Interval clears the closed-state counts periodically. Zero never clears.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// ReadyToTrip decides when the closed breaker opens.
	// Nil means DefaultReadyToTrip.
	ReadyToTrip func(counts gobreaker.Counts) bool

	// OnStateChange is called after every transition.
	OnStateChange func(name string, from gobreaker.State, to gobreaker.State)

	// Logger, when set, receives one line per transition.
	Logger *zerolog.Logger
}

// DefaultCircuitBreakerConfig returns the configuration used for the
// reference document host.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:        name,
		MaxRequests: 1,
		Timeout:     60 * time.Second,
		ReadyToTrip: DefaultReadyToTrip,
	}
}

// DefaultReadyToTrip opens the breaker after a run of consecutive failures,
// or once at least five requests have been seen with half of them failing.
func DefaultReadyToTrip(counts gobreaker.Counts) bool {
	if counts.ConsecutiveFailures >= maxConsecutiveFailures {
		return true
	}
	if counts.Requests < minTripRequests {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= tripFailureRatio
}

// isSuccessful keeps caller cancellations out of the failure counts.
func isSuccessful(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

// NewCircuitBreaker creates a circuit breaker from cfg.
func NewCircuitBreaker[T any](cfg CircuitBreakerConfig) *gobreaker.CircuitBreaker[T] {
	readyToTrip := cfg.ReadyToTrip
	if readyToTrip == nil {
		readyToTrip = DefaultReadyToTrip
	}

	settings := gobreaker.Settings{
		Name:         cfg.Name,
		MaxRequests:  cfg.MaxRequests,
		Interval:     cfg.Interval,
		Timeout:      cfg.Timeout,
		ReadyToTrip:  readyToTrip,
		IsSuccessful: isSuccessful,
	}

	if cfg.OnStateChange != nil || cfg.Logger != nil {
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			if cfg.Logger != nil {
				event := cfg.Logger.Info()
				if to == gobreaker.StateOpen {
					event = cfg.Logger.Warn()
				}
				event.Str("provider", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("circuit breaker state changed")
			}
			if cfg.OnStateChange != nil {
				cfg.OnStateChange(name, from, to)
			}
		}
	}

	return gobreaker.NewCircuitBreaker[T](settings)
}
