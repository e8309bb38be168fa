package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tde-services/project-portal/internal/core/ports"
)

// ScopeKey is the echo.Context key the Scope middleware stores the tab
// scope under.
const ScopeKey = "scope"

// ctxScope returns the tab scope injected by the Scope middleware. Its
// absence means the route was mounted without it.
func ctxScope(c echo.Context) (*ports.Scope, error) {
	sc, _ := c.Get(ScopeKey).(*ports.Scope)
	if sc == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session scope")
	}
	return sc, nil
}

// actorID is the identity user driving the request, empty when no admin is
// signed in.
func actorID(sc *ports.Scope) string {
	if u := sc.Admin.CurrentUser(); u != nil {
		return u.ID
	}
	return ""
}

// bindValid binds the request body into req and validates it.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

// queryInt reads a positive integer query parameter, def otherwise.
func queryInt(c echo.Context, name string, def int) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

type successResponse struct {
	Success bool `json:"success"`
}

func ok(c echo.Context) error {
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
