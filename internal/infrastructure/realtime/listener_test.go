package realtime

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tde-services/project-portal/internal/core/ports"
)

type stubRow struct {
	val []byte
	err error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.val
	return nil
}

type stubRows struct {
	mu    sync.Mutex
	row   stubRow
	sql   string
	args  []any
	calls int
}

func (s *stubRows) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.sql, s.args = sql, args
	return s.row
}

type recordingPublisher struct {
	mu  sync.Mutex
	got []ports.Change
}

func (p *recordingPublisher) Publish(_ context.Context, c ports.Change) error {
	p.mu.Lock()
	p.got = append(p.got, c)
	p.mu.Unlock()
	return nil
}

func TestDecodeNotificationTruncatedFlag(t *testing.T) {
	c, truncated, err := decodeNotification([]byte(`{"table":"messages","type":"INSERT","record":{"id":"m1","project_id":"p1"},"truncated":true}`))
	require.NoError(t, err)
	assert.True(t, truncated)
	assert.Equal(t, "messages", c.Table)

	_, truncated, err = decodeNotification([]byte(`{"table":"messages","type":"INSERT","record":{"id":"m1"}}`))
	require.NoError(t, err)
	assert.False(t, truncated)
}

func TestReloadReplacesCompactedRow(t *testing.T) {
	rows := &stubRows{row: stubRow{val: []byte(`{"id":"m1","project_id":"p1","content":"long text"}`)}}
	l := &Listener{rows: rows, log: zerolog.Nop()}

	c := l.reload(context.Background(), change("messages", ports.ChangeInsert, `{"id":"m1","project_id":"p1"}`))
	assert.JSONEq(t, `{"id":"m1","project_id":"p1","content":"long text"}`, string(c.New))
	assert.Contains(t, rows.sql, `FROM "messages" t`)
	assert.Equal(t, []any{"m1"}, rows.args)
}

func TestReloadKeepsPayloadWhenRowCannotBeRead(t *testing.T) {
	rows := &stubRows{row: stubRow{err: pgx.ErrNoRows}}
	l := &Listener{rows: rows, log: zerolog.Nop()}

	c := l.reload(context.Background(), change("projects", ports.ChangeUpdate, `{"id":"p1","status":"active"}`))
	assert.JSONEq(t, `{"id":"p1","status":"active"}`, string(c.New))

	c = l.reload(context.Background(), ports.Change{Table: "projects", Event: ports.ChangeDelete})
	assert.Empty(t, c.New)
	assert.Equal(t, 1, rows.calls)
}

func TestRunResetsBackoffAfterConnecting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// fail, fail, connect then drop, fail
	plan := []bool{false, false, true, false}
	var (
		mu    sync.Mutex
		waits []time.Duration
		runs  int
	)
	l := &Listener{log: zerolog.Nop(), out: &recordingPublisher{}}
	l.session = func(_ context.Context, connected func()) error {
		mu.Lock()
		i := runs
		runs++
		mu.Unlock()
		if i >= len(plan) {
			cancel()
			return context.Canceled
		}
		if plan[i] {
			connected()
		}
		return errors.New("connection lost")
	}
	l.after = func(d time.Duration) <-chan time.Time {
		mu.Lock()
		waits = append(waits, d)
		mu.Unlock()
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}

	require.NoError(t, l.Run(ctx))
	assert.Equal(t, []time.Duration{minBackoff, 2 * minBackoff, minBackoff, 2 * minBackoff}, waits)
}
