package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestStealthGate(t *testing.T) {
	clock := newFakeClock()
	kv := newMemKV()
	gate := NewStealthGate(kv, "open-sesame", clock.Now, zerolog.Nop())
	ctx := context.Background()

	if gate.HasAccess(ctx) {
		t.Fatalf("gate must start locked")
	}
	if gate.Unlock(ctx, "wrong") {
		t.Fatalf("wrong key must not unlock")
	}
	if !gate.Unlock(ctx, "open-sesame") || !gate.HasAccess(ctx) {
		t.Fatalf("right key must unlock")
	}

	clock.Advance(StealthTTL)
	if gate.HasAccess(ctx) {
		t.Fatalf("access must lapse after %v", StealthTTL)
	}
	if kv.has(keyStealthUntil) {
		t.Fatalf("lapsed flag must be removed")
	}
}

func TestStealthGate_EmptyKeyStaysLocked(t *testing.T) {
	gate := NewStealthGate(newMemKV(), "", nil, zerolog.Nop())
	if gate.Unlock(context.Background(), "") {
		t.Fatalf("empty key must never unlock")
	}
}
