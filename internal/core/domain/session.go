package domain

import "time"

// SessionTTL is the lifetime of both admin and client sessions.
const SessionTTL = 24 * time.Hour

// SessionState is the lazily evaluated state of a stored session record.
type SessionState int

const (
	SessionAbsent SessionState = iota
	SessionActive
	SessionExpired
)

func (s SessionState) String() string {
	switch s {
	case SessionActive:
		return "active"
	case SessionExpired:
		return "expired"
	default:
		return "absent"
	}
}

// AdminSession asserts that UserID is signed in to the back-office until
// ExpiresAt.
type AdminSession struct {
	UserID    string    `json:"userId"`
	LoginTime time.Time `json:"loginTime"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func NewAdminSession(userID string, now time.Time, ttl time.Duration) *AdminSession {
	return &AdminSession{UserID: userID, LoginTime: now, ExpiresAt: now.Add(ttl)}
}

// State reports active or expired; a nil session is absent.
func (s *AdminSession) State(now time.Time) SessionState {
	if s == nil || s.UserID == "" {
		return SessionAbsent
	}
	if now.After(s.ExpiresAt) {
		return SessionExpired
	}
	return SessionActive
}

// Remaining is the time left before expiry, never negative.
func (s *AdminSession) Remaining(now time.Time) time.Duration {
	if s.State(now) != SessionActive {
		return 0
	}
	return s.ExpiresAt.Sub(now)
}

// ClientSession authorizes exactly one project. The PIN is kept apart from
// it and never written to durable storage.
type ClientSession struct {
	ProjectID string    `json:"projectId"`
	LoginTime time.Time `json:"loginTime"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func NewClientSession(projectID string, now time.Time, ttl time.Duration) *ClientSession {
	return &ClientSession{ProjectID: projectID, LoginTime: now, ExpiresAt: now.Add(ttl)}
}

func (s *ClientSession) State(now time.Time) SessionState {
	if s == nil || s.ProjectID == "" {
		return SessionAbsent
	}
	if now.After(s.ExpiresAt) {
		return SessionExpired
	}
	return SessionActive
}

func (s *ClientSession) Remaining(now time.Time) time.Duration {
	if s.State(now) != SessionActive {
		return 0
	}
	return s.ExpiresAt.Sub(now)
}

// LegacyClientSession is the durable copy older client screens read.
type LegacyClientSession struct {
	Type        string `json:"type"`
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	ClientID    string `json:"clientId,omitempty"`
	LoginTime   string `json:"loginTime"`
}
