package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/domain"
	"github.com/tde-services/project-portal/internal/core/ports"
)

// AuthHandler serves both login tracks of the calling tab.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type adminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type adminLoginResponse struct {
	*ports.AdminLoginResult
	Redirect string `json:"redirect"`
}

// clientLoginRequest accepts a project id or the client's email.
type clientLoginRequest struct {
	ProjectID string `json:"project_id" validate:"required"`
	PIN       string `json:"pin"`
}

type clientLoginResponse struct {
	Success  bool            `json:"success"`
	Project  *domain.Project `json:"project"`
	Redirect string          `json:"redirect"`
}

type logoutResponse struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect"`
}

type adminSessionView struct {
	Authenticated    bool            `json:"authenticated"`
	SuperAdmin       bool            `json:"superadmin"`
	User             *domain.User    `json:"user,omitempty"`
	Profile          *domain.Profile `json:"profile,omitempty"`
	RemainingSeconds int64           `json:"remainingSeconds"`
}

type clientSessionView struct {
	Authenticated    bool   `json:"authenticated"`
	ProjectID        string `json:"projectId,omitempty"`
	RemainingSeconds int64  `json:"remainingSeconds"`
}

type sessionResponse struct {
	Admin  adminSessionView  `json:"admin"`
	Client clientSessionView `json:"client"`
}

// AdminLogin signs the tab in as a back-office user.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      adminLoginRequest  true  "Credentials"
// @Success      200   {object}  adminLoginResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /api/auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req adminLoginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	res, err := sc.Admin.LoginAdmin(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminLoginResponse{
		AdminLoginResult: res,
		Redirect:         sc.Admin.RedirectAfterLogin(ctx),
	})
}

// ClientLogin opens the project-id + PIN track.
//
// @Summary      Client login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      clientLoginRequest  true  "Project id or client email, and PIN"
// @Success      200   {object}  clientLoginResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/client/login [post]
func (h *AuthHandler) ClientLogin(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	var req clientLoginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	// The relay is rebound to the new project by the next guarded request.
	if sc.ClientRelay != nil {
		sc.ClientRelay.Stop()
	}
	p, err := sc.Client.LoginClient(c.Request().Context(), req.ProjectID, req.PIN)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientLoginResponse{Success: true, Project: p, Redirect: ports.ClientHomePath})
}

// Logout ends both tracks of the tab.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	for _, relay := range []ports.AlertRelay{sc.AdminRelay, sc.ClientRelay} {
		if relay != nil {
			relay.Stop()
		}
	}
	// Local state is gone even when the identity provider could not be
	// reached, so the caller still gets its redirect.
	redirect, err := sc.Admin.Logout(c.Request().Context())
	if err != nil {
		zerolog.Ctx(c.Request().Context()).Warn().Err(err).Str("tab_id", sc.TabID).Msg("logout completed locally")
	}
	return c.JSON(http.StatusOK, logoutResponse{Success: true, Redirect: redirect})
}

// ClientLogout ends the client track only.
//
// @Summary      Client logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Router       /api/auth/client/logout [post]
func (h *AuthHandler) ClientLogout(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	sc.Client.Logout(c.Request().Context())
	if sc.ClientRelay != nil {
		sc.ClientRelay.Stop()
	}
	return c.JSON(http.StatusOK, logoutResponse{Success: true, Redirect: ports.ClientLoginPath})
}

// Session reports what the tab is signed in as.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var resp sessionResponse
	if sc.Admin.IsAdmin(ctx) {
		resp.Admin = adminSessionView{
			Authenticated:    true,
			SuperAdmin:       sc.Admin.IsSuperAdmin(ctx),
			User:             sc.Admin.CurrentUser(),
			Profile:          sc.Admin.CurrentProfile(),
			RemainingSeconds: int64(sc.Admin.SessionTimeRemaining(ctx).Seconds()),
		}
	}
	if sc.Client.IsClient(ctx) {
		resp.Client = clientSessionView{
			Authenticated:    true,
			ProjectID:        sc.Client.ProjectID(ctx),
			RemainingSeconds: int64(sc.Client.SessionTimeRemaining(ctx).Seconds()),
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Guard evaluates a page guard without side effects on the caller's page.
//
// @Summary      Evaluate a page guard
// @Tags         auth
// @Produce      json
// @Param        area  query     string  true   "admin, superadmin or client"
// @Param        path  query     string  false  "Page the browser is trying to open"
// @Success      200   {object}  ports.GuardDecision
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/guard [get]
func (h *AuthHandler) Guard(c echo.Context) error {
	sc, err := ctxScope(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	path := c.QueryParam("path")

	var d ports.GuardDecision
	switch c.QueryParam("area") {
	case "admin":
		d = sc.Admin.RequireAdmin(ctx, path)
	case "superadmin":
		d = sc.Admin.RequireSuperAdmin(ctx, path)
	case "client":
		d = sc.Client.RequireClient(ctx, path)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "area must be one of: admin superadmin client")
	}
	return c.JSON(http.StatusOK, d)
}
