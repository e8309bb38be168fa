package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/pkg/metrics"
)

// strategy is one named way of producing a T. Operations list their
// strategies from the most specific remote procedure to the plainest table
// query and run them with firstOf.
type strategy[T any] struct {
	name string
	run  func(ctx context.Context) (T, error)
}

// Attempt is the failure of a single strategy.
type Attempt struct {
	Strategy string
	Err      error
}

// StrategyError lists every failed attempt of an operation, in order.
type StrategyError struct {
	Op       string
	Attempts []Attempt
}

func (e *StrategyError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Strategy, a.Err))
	}
	return fmt.Sprintf("%s failed (%s)", e.Op, strings.Join(parts, " | "))
}

func (e *StrategyError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}

// Last returns the error of the final attempt.
func (e *StrategyError) Last() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[len(e.Attempts)-1].Err
}

// fallbackPolicy decides whether a strategy error lets the next one run.
type fallbackPolicy func(error) bool

func onMissingFunction(err error) bool {
	return errors.Is(err, ports.ErrFunctionMissing)
}

func onAnyError(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// firstOf runs strategies in order until one succeeds or policy stops the
// chain.
func firstOf[T any](ctx context.Context, log zerolog.Logger, op string, policy fallbackPolicy, strategies ...strategy[T]) (T, error) {
	var zero T
	serr := &StrategyError{Op: op}
	for i, s := range strategies {
		v, err := s.run(ctx)
		if err == nil {
			if i > 0 {
				metrics.StrategyFallbacksTotal.WithLabelValues(op, s.name).Inc()
			}
			return v, nil
		}
		serr.Attempts = append(serr.Attempts, Attempt{Strategy: s.name, Err: err})
		if i == len(strategies)-1 || !policy(err) {
			break
		}
		log.Debug().Err(err).Str("op", op).Str("strategy", s.name).Msg("strategy failed, trying next")
	}
	return zero, serr
}
