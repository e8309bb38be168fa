package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/pkg/metrics"
)

var procName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ProcedureCaller invokes stored functions returning jsonb with named
// arguments.
type ProcedureCaller struct {
	db  Querier
	log zerolog.Logger
}

var _ ports.ProcedureCaller = (*ProcedureCaller)(nil)

func NewProcedureCaller(db Querier, log zerolog.Logger) *ProcedureCaller {
	return &ProcedureCaller{db: db, log: log.With().Str("component", "rpc").Logger()}
}

// Call runs SELECT fn(name => $n, ...)::jsonb and decodes the result into
// out. A NULL result yields ports.ErrEmptyResult.
func (c *ProcedureCaller) Call(ctx context.Context, fn string, args map[string]any, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.RPCDuration.WithLabelValues(fn, rpcOutcome(err)).Observe(time.Since(start).Seconds())
	}()

	if !procName.MatchString(fn) {
		return fmt.Errorf("rpc %q: invalid function name", fn)
	}
	sql, values := callSQL(fn, args)

	var raw []byte
	if err := c.db.QueryRow(ctx, sql, values...).Scan(&raw); err != nil {
		err = classify(err)
		c.log.Debug().Err(err).Str("function", fn).Msg("rpc failed")
		return fmt.Errorf("rpc %s: %w", fn, err)
	}
	if raw == nil || string(raw) == "null" {
		return ports.ErrEmptyResult
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("rpc %s: decode: %w", fn, err)
	}
	return nil
}

func callSQL(fn string, args map[string]any) (string, []any) {
	names := make([]string, 0, len(args))
	for k := range args {
		names = append(names, k)
	}
	slices.Sort(names)

	parts := make([]string, len(names))
	values := make([]any, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s => $%d", pgx.Identifier{n}.Sanitize(), i+1)
		values[i] = args[n]
	}
	return fmt.Sprintf("SELECT %s(%s)::jsonb", pgx.Identifier{fn}.Sanitize(), strings.Join(parts, ", ")), values
}

func rpcOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ports.ErrEmptyResult):
		return "empty"
	case errors.Is(err, ports.ErrFunctionMissing):
		return "missing"
	case errors.Is(err, ports.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
