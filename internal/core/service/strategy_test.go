package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/ports"
)

func step(name string, v int, err error, calls *[]string) strategy[int] {
	return strategy[int]{name: name, run: func(context.Context) (int, error) {
		*calls = append(*calls, name)
		return v, err
	}}
}

func TestFirstOf_StopsAtFirstSuccess(t *testing.T) {
	var calls []string
	v, err := firstOf(context.Background(), zerolog.Nop(), "test.first", onMissingFunction,
		step("rpc", 0, ports.ErrFunctionMissing, &calls),
		step("table", 7, nil, &calls),
		step("never", 9, nil, &calls),
	)
	if err != nil || v != 7 {
		t.Fatalf("expected 7, got %d (%v)", v, err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected 2 strategies run, got %v", calls)
	}
}

func TestFirstOf_PolicyStopsChain(t *testing.T) {
	var calls []string
	_, err := firstOf(context.Background(), zerolog.Nop(), "test.policy", onMissingFunction,
		step("rpc", 0, errBoom, &calls),
		step("table", 7, nil, &calls),
	)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("fallback must not run, got %v", calls)
	}
}

func TestFirstOf_CollectsEveryAttempt(t *testing.T) {
	var calls []string
	_, err := firstOf(context.Background(), zerolog.Nop(), "test.all", onAnyError,
		step("a", 0, errBoom, &calls),
		step("b", 0, ports.ErrNotFound, &calls),
	)
	var serr *StrategyError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StrategyError, got %T", err)
	}
	if len(serr.Attempts) != 2 || serr.Attempts[0].Strategy != "a" {
		t.Fatalf("unexpected attempts: %+v", serr.Attempts)
	}
	if !errors.Is(serr.Last(), ports.ErrNotFound) {
		t.Fatalf("expected last error ErrNotFound, got %v", serr.Last())
	}
	if !errors.Is(err, errBoom) {
		t.Fatalf("every attempt error must be reachable")
	}
}

func TestOnAnyError_StopsOnCancellation(t *testing.T) {
	if onAnyError(context.Canceled) {
		t.Fatalf("cancellation must stop the chain")
	}
	if !onAnyError(errBoom) {
		t.Fatalf("plain errors must fall through")
	}
}
