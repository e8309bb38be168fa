package realtime

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tde-services/project-portal/internal/core/ports"
)

func startHub(t *testing.T, shards int) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub(shards, zerolog.Nop())
	h.Start(ctx)
	return h
}

func change(table string, ev ports.ChangeEvent, row string) ports.Change {
	return ports.Change{Table: table, Event: ev, New: json.RawMessage(row), CommitTime: time.Now()}
}

// collect returns a handler that forwards changes to a buffered channel.
func collect() (func(ports.Change), chan ports.Change) {
	ch := make(chan ports.Change, 16)
	return func(c ports.Change) { ch <- c }, ch
}

func receive(t *testing.T, ch <-chan ports.Change) ports.Change {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
		return ports.Change{}
	}
}

func assertSilent(t *testing.T, ch <-chan ports.Change) {
	t.Helper()
	select {
	case c := <-ch:
		t.Fatalf("unexpected change %+v", c)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubFiltersByTableEventAndColumn(t *testing.T) {
	h := startHub(t, 2)
	ctx := context.Background()

	all, allCh := collect()
	_, err := h.Subscribe(ctx, ports.ChangeFilter{Table: "messages"}, all)
	require.NoError(t, err)

	inserts, insCh := collect()
	_, err = h.Subscribe(ctx, ports.ChangeFilter{Table: "messages", Event: ports.ChangeInsert, Column: "project_id", Value: "p1"}, inserts)
	require.NoError(t, err)

	require.NoError(t, h.Publish(ctx, change("messages", ports.ChangeInsert, `{"id":"m1","project_id":"p2"}`)))
	require.NoError(t, h.Publish(ctx, change("messages", ports.ChangeUpdate, `{"id":"m2","project_id":"p1"}`)))
	require.NoError(t, h.Publish(ctx, change("messages", ports.ChangeInsert, `{"id":"m3","project_id":"p1"}`)))
	require.NoError(t, h.Publish(ctx, change("tickets", ports.ChangeInsert, `{"id":"t1","project_id":"p1"}`)))

	for _, want := range []string{"m1", "m2", "m3"} {
		c := receive(t, allCh)
		assert.Contains(t, string(c.New), want)
	}
	c := receive(t, insCh)
	assert.Contains(t, string(c.New), `"m3"`)
	assertSilent(t, insCh)
	assertSilent(t, allCh)
}

func TestHubDeleteFilterUsesOldRow(t *testing.T) {
	h := startHub(t, 1)
	ctx := context.Background()

	handler, ch := collect()
	_, err := h.Subscribe(ctx, ports.ChangeFilter{Table: "messages", Column: "project_id", Value: "p1"}, handler)
	require.NoError(t, err)

	require.NoError(t, h.Publish(ctx, ports.Change{
		Table: "messages",
		Event: ports.ChangeDelete,
		New:   json.RawMessage("null"),
		Old:   json.RawMessage(`{"id":"m1","project_id":"p1"}`),
	}))

	c := receive(t, ch)
	assert.Equal(t, ports.ChangeDelete, c.Event)
}

func TestHubPreservesOrderPerTable(t *testing.T) {
	h := startHub(t, 4)
	ctx := context.Background()

	var mu sync.Mutex
	var got []string
	done := make(chan struct{})
	_, err := h.Subscribe(ctx, ports.ChangeFilter{Table: "phases"}, func(c ports.Change) {
		var row struct{ ID string }
		_ = json.Unmarshal(c.New, &row)
		mu.Lock()
		got = append(got, row.ID)
		if len(got) == 50 {
			close(done)
		}
		mu.Unlock()
	})
	require.NoError(t, err)

	want := make([]string, 50)
	for i := range want {
		want[i] = strconv.Itoa(i)
		require.NoError(t, h.Publish(ctx, change("phases", ports.ChangeUpdate, `{"id":"`+want[i]+`"}`)))
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, want, got)
}

func TestHubUnsubscribe(t *testing.T) {
	h := startHub(t, 1)
	ctx := context.Background()

	handler, ch := collect()
	sub, err := h.Subscribe(ctx, ports.ChangeFilter{Table: "admin_events"}, handler)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Subscribers("admin_events"))

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 0, h.Subscribers("admin_events"))

	require.NoError(t, h.Publish(ctx, change("admin_events", ports.ChangeInsert, `{"id":"e1"}`)))
	assertSilent(t, ch)
}

func TestHubRecoversFromHandlerPanic(t *testing.T) {
	h := startHub(t, 1)
	ctx := context.Background()

	_, err := h.Subscribe(ctx, ports.ChangeFilter{Table: "tickets"}, func(ports.Change) { panic("boom") })
	require.NoError(t, err)
	handler, ch := collect()
	_, err = h.Subscribe(ctx, ports.ChangeFilter{Table: "tickets"}, handler)
	require.NoError(t, err)

	require.NoError(t, h.Publish(ctx, change("tickets", ports.ChangeInsert, `{"id":"t1"}`)))
	require.NoError(t, h.Publish(ctx, change("tickets", ports.ChangeInsert, `{"id":"t2"}`)))

	receive(t, ch)
	receive(t, ch)
}

func TestHubSubscribeValidation(t *testing.T) {
	h := NewHub(1, zerolog.Nop())

	_, err := h.Subscribe(context.Background(), ports.ChangeFilter{}, func(ports.Change) {})
	assert.ErrorIs(t, err, ErrNoTable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = h.Subscribe(ctx, ports.ChangeFilter{Table: "messages"}, func(ports.Change) {})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPublishHonoursContextWhenShardIsFull(t *testing.T) {
	h := NewHub(1, zerolog.Nop())
	for i := 0; i < channelBuffer; i++ {
		require.NoError(t, h.Publish(context.Background(), change("messages", ports.ChangeInsert, `{}`)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := h.Publish(ctx, change("messages", ports.ChangeInsert, `{}`))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDecodeChange(t *testing.T) {
	c, err := DecodeChange([]byte(`{"table":"messages","type":"INSERT","record":{"id":"m1"},"old_record":null,"commit_timestamp":"2025-03-01T10:00:00.123456+00:00"}`))
	require.NoError(t, err)
	assert.Equal(t, "messages", c.Table)
	assert.Equal(t, ports.ChangeInsert, c.Event)
	assert.JSONEq(t, `{"id":"m1"}`, string(c.New))
	assert.Equal(t, 2025, c.CommitTime.Year())

	_, err = DecodeChange([]byte(`{"type":"INSERT"}`))
	assert.Error(t, err)
	_, err = DecodeChange([]byte(`not json`))
	assert.Error(t, err)
}
