package ports

import (
	"context"
	"encoding/json"
	"time"
)

type ChangeEvent string

const (
	ChangeInsert ChangeEvent = "INSERT"
	ChangeUpdate ChangeEvent = "UPDATE"
	ChangeDelete ChangeEvent = "DELETE"
	ChangeAny    ChangeEvent = "*"
)

// Change is one row change published on the realtime feed.
type Change struct {
	Table      string          `json:"table"`
	Event      ChangeEvent     `json:"type"`
	New        json.RawMessage `json:"record,omitempty"`
	Old        json.RawMessage `json:"old_record,omitempty"`
	CommitTime time.Time       `json:"commit_timestamp"`
}

// ChangeFilter selects changes by table, event and an optional
// column=value predicate on the new row.
type ChangeFilter struct {
	Table  string
	Event  ChangeEvent
	Column string
	Value  string
}

// Subscription is an open realtime channel.
type Subscription interface {
	Unsubscribe()
}

// Realtime opens filtered channels on the change feed. Handlers run on
// delivery goroutines and must not block.
type Realtime interface {
	Subscribe(ctx context.Context, filter ChangeFilter, handler func(Change)) (Subscription, error)
}
