package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/ports"
)

// Channel is the notification channel the schema triggers publish on.
const Channel = "portal_changes"

const (
	minBackoff = 500 * time.Millisecond
	maxBackoff = 30 * time.Second
)

// Publisher accepts decoded changes.
type Publisher interface {
	Publish(ctx context.Context, c ports.Change) error
}

// RowReader loads a single row. *pgxpool.Pool satisfies it.
type RowReader interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Listener holds a dedicated pool connection in LISTEN mode and forwards
// every notification to a Publisher. Lost connections are re-established
// with exponential backoff.
type Listener struct {
	pool    *pgxpool.Pool
	rows    RowReader
	channel string
	out     Publisher
	log     zerolog.Logger

	session func(ctx context.Context, connected func()) error
	after   func(time.Duration) <-chan time.Time
}

func NewListener(pool *pgxpool.Pool, out Publisher, log zerolog.Logger) *Listener {
	l := &Listener{
		pool:    pool,
		rows:    pool,
		channel: Channel,
		out:     out,
		log:     log.With().Str("component", "listener").Logger(),
		after:   time.After,
	}
	l.session = l.listen
	return l
}

// Run listens until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	backoff := minBackoff
	for {
		err := l.session(ctx, func() { backoff = minBackoff })
		if ctx.Err() != nil {
			return nil
		}
		l.log.Warn().Err(err).Dur("retry_in", backoff).Msg("change feed interrupted")
		select {
		case <-ctx.Done():
			return nil
		case <-l.after(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

// listen calls connected once LISTEN succeeded.
func (l *Listener) listen(ctx context.Context, connected func()) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// A connection that was listening must not go back to the pool.
		_ = conn.Conn().Close(context.Background())
		conn.Release()
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return err
	}
	l.log.Info().Str("channel", l.channel).Msg("listening for changes")
	connected()

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		c, truncated, err := decodeNotification([]byte(n.Payload))
		if err != nil {
			l.log.Error().Err(err).Msg("malformed change notification dropped")
			continue
		}
		if truncated {
			c = l.reload(ctx, c)
		}
		if err := l.out.Publish(ctx, c); err != nil {
			return err
		}
	}
}

var errNoTable = errors.New("change notification without table")

// notification is the trigger payload. Truncated marks rows that were too
// large for NOTIFY and arrive with only their short columns.
type notification struct {
	ports.Change
	Truncated bool `json:"truncated"`
}

// DecodeChange parses a notification payload.
func DecodeChange(payload []byte) (ports.Change, error) {
	c, _, err := decodeNotification(payload)
	return c, err
}

func decodeNotification(payload []byte) (ports.Change, bool, error) {
	var n notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return ports.Change{}, false, err
	}
	if n.Table == "" {
		return ports.Change{}, false, errNoTable
	}
	return n.Change, n.Truncated, nil
}

// reload replaces the compacted new row with the stored one. Deleted rows
// and failed reads keep what the notification carried.
func (l *Listener) reload(ctx context.Context, c ports.Change) ports.Change {
	if c.Event == ports.ChangeDelete || len(c.New) == 0 {
		return c
	}
	var key struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(c.New, &key); err != nil || key.ID == "" {
		return c
	}

	var row []byte
	q := "SELECT to_jsonb(t) FROM " + pgx.Identifier{c.Table}.Sanitize() + " t WHERE t.id::text = $1"
	if err := l.rows.QueryRow(ctx, q, key.ID).Scan(&row); err != nil {
		l.log.Warn().Err(err).Str("table", c.Table).Str("id", key.ID).Msg("reload of truncated change failed")
		return c
	}
	c.New = row
	return c
}
