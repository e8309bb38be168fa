// Package realtime fans database row changes out to in-process subscribers.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/pkg/metrics"
)

const (
	defaultShards = 8
	channelBuffer = 256
)

var ErrNoTable = errors.New("realtime: subscription needs a table")

// Hub routes changes to a fixed set of shard workers using consistent
// hashing on the table name, so subscribers of a table see its changes in
// commit order.
type Hub struct {
	shards []chan ports.Change
	log    zerolog.Logger

	mu     sync.RWMutex
	subs   map[string]map[uint64]*subscription
	nextID atomic.Uint64
}

var _ ports.Realtime = (*Hub)(nil)

// NewHub creates a Hub with numShards workers. If numShards <= 0,
// defaultShards is used.
func NewHub(numShards int, log zerolog.Logger) *Hub {
	if numShards <= 0 {
		numShards = defaultShards
	}
	h := &Hub{
		shards: make([]chan ports.Change, numShards),
		subs:   make(map[string]map[uint64]*subscription),
		log:    log.With().Str("component", "realtime").Logger(),
	}
	for i := range h.shards {
		h.shards[i] = make(chan ports.Change, channelBuffer)
	}
	return h
}

// Start launches the shard workers. Workers stop when ctx is cancelled.
func (h *Hub) Start(ctx context.Context) {
	for i, ch := range h.shards {
		go h.runShard(ctx, i, ch)
	}
}

// Publish hands a change to the shard of its table. It blocks while the
// shard buffer is full, until ctx is done.
func (h *Hub) Publish(ctx context.Context, c ports.Change) error {
	idx := h.shardIndex(c.Table)
	select {
	case h.shards[idx] <- c:
		metrics.RealtimeQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(h.shards[idx])))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe registers handler for the changes matching filter. The
// subscription lives until Unsubscribe; ctx only aborts the registration.
func (h *Hub) Subscribe(ctx context.Context, filter ports.ChangeFilter, handler func(ports.Change)) (ports.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if filter.Table == "" {
		return nil, ErrNoTable
	}
	if filter.Event == "" {
		filter.Event = ports.ChangeAny
	}
	s := &subscription{id: h.nextID.Add(1), filter: filter, handler: handler, hub: h}

	h.mu.Lock()
	bucket, ok := h.subs[filter.Table]
	if !ok {
		bucket = make(map[uint64]*subscription)
		h.subs[filter.Table] = bucket
	}
	bucket[s.id] = s
	h.mu.Unlock()

	metrics.RealtimeSubscriptions.WithLabelValues(filter.Table).Inc()
	h.log.Debug().Str("table", filter.Table).Str("event", string(filter.Event)).
		Str("column", filter.Column).Msg("subscribed")
	return s, nil
}

// Subscribers reports the open subscriptions on table.
func (h *Hub) Subscribers(table string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[table])
}

func (h *Hub) remove(s *subscription) {
	h.mu.Lock()
	bucket := h.subs[s.filter.Table]
	_, ok := bucket[s.id]
	delete(bucket, s.id)
	if len(bucket) == 0 {
		delete(h.subs, s.filter.Table)
	}
	h.mu.Unlock()
	if ok {
		metrics.RealtimeSubscriptions.WithLabelValues(s.filter.Table).Dec()
	}
}

// shardIndex maps a table name deterministically to a worker index.
func (h *Hub) shardIndex(table string) int {
	f := fnv.New32a()
	_, _ = f.Write([]byte(table))
	return int(f.Sum32() % uint32(len(h.shards)))
}

func (h *Hub) runShard(ctx context.Context, id int, ch <-chan ports.Change) {
	depth := metrics.RealtimeQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			h.deliver(c)
		}
	}
}

func (h *Hub) deliver(c ports.Change) {
	h.mu.RLock()
	targets := make([]*subscription, 0, len(h.subs[c.Table]))
	for _, s := range h.subs[c.Table] {
		targets = append(targets, s)
	}
	h.mu.RUnlock()
	if len(targets) == 0 {
		return
	}

	var row map[string]any
	for _, s := range targets {
		if s.filter.Event != ports.ChangeAny && s.filter.Event != c.Event {
			continue
		}
		if s.filter.Column != "" {
			if row == nil {
				row = decodeRow(c)
			}
			if fmt.Sprint(row[s.filter.Column]) != s.filter.Value {
				continue
			}
		}
		h.call(s, c)
	}
}

func (h *Hub) call(s *subscription, c ports.Change) {
	if s.closed.Load() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Str("table", c.Table).Msg("realtime handler panicked")
		}
	}()
	s.handler(c)
	metrics.ChangesDeliveredTotal.WithLabelValues(c.Table).Inc()
}

// decodeRow returns the row a column filter applies to: the new row, or
// the old one for deletes.
func decodeRow(c ports.Change) map[string]any {
	raw := c.New
	if c.Event == ports.ChangeDelete || len(raw) == 0 || string(raw) == "null" {
		raw = c.Old
	}
	row := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &row)
	}
	return row
}

type subscription struct {
	id      uint64
	filter  ports.ChangeFilter
	handler func(ports.Change)
	hub     *Hub
	closed  atomic.Bool
}

// Unsubscribe is idempotent.
func (s *subscription) Unsubscribe() {
	if s.closed.Swap(true) {
		return
	}
	s.hub.remove(s)
}
