package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tde-services/project-portal/internal/core/domain"
)

const (
	sseBuffer    = 32
	sseHeartbeat = 25 * time.Second
)

// streamMessages forwards messages delivered through subscribe to the client
// as server-sent events until the request ends. Messages arriving while the
// buffer is full are dropped; the client refetches on reconnect.
func streamMessages(c echo.Context, subscribe func(context.Context, func(domain.Message)) error, unsubscribe func()) error {
	ctx := c.Request().Context()
	msgs := make(chan domain.Message, sseBuffer)
	push := func(m domain.Message) {
		select {
		case msgs <- m:
		default:
		}
	}
	if err := subscribe(ctx, push); err != nil {
		return err
	}
	defer unsubscribe()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	ticker := time.NewTicker(sseHeartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case m := <-msgs:
			raw, err := json.Marshal(m)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "event: message\ndata: %s\n\n", raw); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
