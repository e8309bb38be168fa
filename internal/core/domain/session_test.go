package domain

import (
	"testing"
	"time"
)

func TestAdminSession_State(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s := NewAdminSession("u1", now, SessionTTL)

	if s.State(now) != SessionActive || s.Remaining(now) != SessionTTL {
		t.Fatalf("fresh session must be active for the whole TTL")
	}
	if s.State(now.Add(SessionTTL)) != SessionActive {
		t.Fatalf("session must still be active at its expiry instant")
	}
	later := now.Add(SessionTTL + time.Second)
	if s.State(later) != SessionExpired || s.Remaining(later) != 0 {
		t.Fatalf("session must expire after the TTL")
	}

	var nilSession *AdminSession
	if nilSession.State(now) != SessionAbsent {
		t.Fatalf("nil session must be absent")
	}
}

func TestClientSession_State(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	if (&ClientSession{}).State(now) != SessionAbsent {
		t.Fatalf("session without project must be absent")
	}
	s := NewClientSession("p1", now, time.Hour)
	if s.State(now.Add(2*time.Hour)) != SessionExpired {
		t.Fatalf("expected expired")
	}
}
