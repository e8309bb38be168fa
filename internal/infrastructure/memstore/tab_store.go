// Package memstore keeps short-lived per-tab state in process memory.
package memstore

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/tde-services/project-portal/internal/core/ports"
)

const (
	defaultTabTTL   = 12 * time.Hour
	cleanupInterval = time.Minute
)

// Tabs holds the stores of every tab in one cache. Entries expire ttl after
// their last write, like a tab that was closed.
type Tabs struct {
	c *gocache.Cache
}

func NewTabs(ttl time.Duration) *Tabs {
	if ttl <= 0 {
		ttl = defaultTabTTL
	}
	return &Tabs{c: gocache.New(ttl, cleanupInterval)}
}

// For returns the store of tabID.
func (t *Tabs) For(tabID string) *TabStore {
	return &TabStore{c: t.c, prefix: "tab:" + tabID + ":"}
}

// Drop forgets everything tabID stored.
func (t *Tabs) Drop(tabID string) {
	prefix := "tab:" + tabID + ":"
	for k := range t.c.Items() {
		if strings.HasPrefix(k, prefix) {
			t.c.Delete(k)
		}
	}
}

// TabStore is one tab's view of Tabs. It never fails.
type TabStore struct {
	c      *gocache.Cache
	prefix string
}

var _ ports.KeyValueStore = (*TabStore)(nil)

func (s *TabStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.c.Get(s.prefix + key)
	if !ok {
		return "", false, nil
	}
	str, _ := v.(string)
	return str, true, nil
}

func (s *TabStore) Set(_ context.Context, key, value string) error {
	s.c.SetDefault(s.prefix+key, value)
	return nil
}

func (s *TabStore) Delete(_ context.Context, key string) error {
	s.c.Delete(s.prefix + key)
	return nil
}
