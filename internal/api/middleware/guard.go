package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/api/handler"
	"github.com/tde-services/project-portal/internal/core/ports"
)

// PageHeader carries the page the browser is on, so a refused request can
// send the user back there after login.
const PageHeader = "X-Page-Path"

type guardResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

type guardFunc func(c echo.Context, sc *ports.Scope, path string) ports.GuardDecision

// RequireAdmin lets through tabs with a live admin session and starts the
// tab's admin alert relay.
func RequireAdmin(log zerolog.Logger) echo.MiddlewareFunc {
	return guard(log, func(c echo.Context, sc *ports.Scope, path string) ports.GuardDecision {
		return sc.Admin.RequireAdmin(c.Request().Context(), path)
	}, func(sc *ports.Scope) ports.AlertRelay { return sc.AdminRelay })
}

// RequireSuperAdmin also needs the device to have unlocked the stealth
// entry; locked devices get a plain 404.
func RequireSuperAdmin(log zerolog.Logger) echo.MiddlewareFunc {
	return guard(log, func(c echo.Context, sc *ports.Scope, path string) ports.GuardDecision {
		ctx := c.Request().Context()
		if !sc.Stealth.HasAccess(ctx) {
			return ports.GuardDecision{}
		}
		return sc.Admin.RequireSuperAdmin(ctx, path)
	}, func(sc *ports.Scope) ports.AlertRelay { return sc.AdminRelay })
}

// RequireClient lets through tabs with a live client session and starts
// the tab's client alert relay.
func RequireClient(log zerolog.Logger) echo.MiddlewareFunc {
	return guard(log, func(c echo.Context, sc *ports.Scope, path string) ports.GuardDecision {
		return sc.Client.RequireClient(c.Request().Context(), path)
	}, func(sc *ports.Scope) ports.AlertRelay { return sc.ClientRelay })
}

func guard(log zerolog.Logger, check guardFunc, relay func(*ports.Scope) ports.AlertRelay) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sc, _ := c.Get(handler.ScopeKey).(*ports.Scope)
			if sc == nil {
				return c.JSON(http.StatusUnauthorized, guardResponse{Error: "not authenticated", Redirect: ports.HomePath})
			}

			path := c.Request().Header.Get(PageHeader)
			if path == "" {
				path = c.Request().URL.Path
			}
			d := check(c, sc, path)
			if !d.Allowed {
				// Sent back to a login page: the track's alerts go with it.
				if r := relay(sc); r != nil && isLoginPath(d.Redirect) {
					r.Stop()
				}
				return refuse(c, d)
			}

			if r := relay(sc); r != nil {
				if err := r.Start(c.Request().Context()); err != nil {
					log.Warn().Err(err).Str("tab", sc.TabID).Msg("alert relay not started")
				}
			}
			return next(c)
		}
	}
}

func isLoginPath(p string) bool {
	return p == ports.AdminLoginPath || p == ports.ClientLoginPath
}

func refuse(c echo.Context, d ports.GuardDecision) error {
	switch d.Redirect {
	case "":
		return c.JSON(http.StatusNotFound, guardResponse{Error: "not found", Redirect: ports.HomePath})
	case ports.AdminLoginPath, ports.ClientLoginPath:
		return c.JSON(http.StatusUnauthorized, guardResponse{Error: "not authenticated", Redirect: d.Redirect})
	default:
		return c.JSON(http.StatusForbidden, guardResponse{Error: "access denied", Redirect: d.Redirect})
	}
}
