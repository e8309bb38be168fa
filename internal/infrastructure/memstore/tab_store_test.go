package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabStoresAreIsolated(t *testing.T) {
	ctx := context.Background()
	tabs := NewTabs(time.Minute)
	a, b := tabs.For("a"), tabs.For("b")

	require.NoError(t, a.Set(ctx, "admin_session", "x"))

	v, ok, err := a.Get(ctx, "admin_session")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok, _ = b.Get(ctx, "admin_session")
	assert.False(t, ok)
}

func TestTabStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewTabs(time.Minute).For("a")

	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Delete(ctx, "k"))

	_, ok, _ := s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestTabsDrop(t *testing.T) {
	ctx := context.Background()
	tabs := NewTabs(time.Minute)
	a, ab := tabs.For("a"), tabs.For("ab")
	require.NoError(t, a.Set(ctx, "k1", "v"))
	require.NoError(t, a.Set(ctx, "k2", "v"))
	require.NoError(t, ab.Set(ctx, "k1", "v"))

	tabs.Drop("a")

	_, ok, _ := a.Get(ctx, "k1")
	assert.False(t, ok)
	_, ok, _ = a.Get(ctx, "k2")
	assert.False(t, ok)
	_, ok, _ = ab.Get(ctx, "k1")
	assert.True(t, ok, "a tab whose id shares a prefix must survive")
}

func TestTabStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewTabs(20 * time.Millisecond).For("a")
	require.NoError(t, s.Set(ctx, "k", "v"))

	time.Sleep(40 * time.Millisecond)

	_, ok, _ := s.Get(ctx, "k")
	assert.False(t, ok)
}
