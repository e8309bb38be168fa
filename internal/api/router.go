package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/tde-services/project-portal/docs"
	"github.com/tde-services/project-portal/internal/api/handler"
	"github.com/tde-services/project-portal/internal/api/middleware"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/infrastructure/storage"
)

// Services are the shared, tab-independent collaborators of the API.
type Services struct {
	Projects   ports.ProjectService
	Phases     ports.PhaseService
	Tickets    ports.TicketService
	Documents  ports.DocumentService
	Events     ports.AdminEventService
	SuperAdmin ports.SuperAdminService
	Objects    handler.ObjectServer
	Scopes     *middleware.ScopeRegistry
	Readiness  map[string]handler.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Probes, metrics and docs (no scope required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(svc.Readiness).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Object storage ---
	st := handler.NewStorageHandler(svc.Objects)
	e.GET(storage.PublicPrefix+":bucket/*", st.Public)
	e.GET(storage.SignPrefix+":bucket/*", st.Signed)

	// --- API (tab scoped) ---
	apiGroup := e.Group("/api", middleware.Scope(svc.Scopes))
	registerAuth(apiGroup)
	registerAdmin(apiGroup.Group("/admin", middleware.RequireAdmin(log)), svc)
	registerSuperAdmin(apiGroup.Group("/superadmin"), svc, log)
	registerClient(apiGroup.Group("/client", middleware.RequireClient(log)))
	registerNotifications(apiGroup.Group("/notifications"), log)

	return e
}

func registerAuth(g *echo.Group) {
	h := handler.NewAuthHandler()
	g.POST("/auth/admin/login", h.AdminLogin)
	g.POST("/auth/client/login", h.ClientLogin)
	g.POST("/auth/logout", h.Logout)
	g.POST("/auth/client/logout", h.ClientLogout)
	g.GET("/auth/session", h.Session)
	g.GET("/auth/guard", h.Guard)
}

func registerAdmin(g *echo.Group, svc Services) {
	projects := handler.NewProjectHandler(svc.Projects, svc.Phases)
	g.GET("/projects", projects.List)
	g.POST("/projects", projects.Create)
	g.GET("/projects/stats", projects.Stats)
	g.GET("/projects/:id", projects.Get)
	g.PATCH("/projects/:id", projects.Update)
	g.DELETE("/projects/:id", projects.Delete)
	g.GET("/projects/:id/activity", projects.Activity)
	g.GET("/projects/:id/phases", projects.Phases)
	g.POST("/projects/:id/phases", projects.CreatePhase)
	g.PATCH("/phases/:id", projects.UpdatePhase)
	g.DELETE("/phases/:id", projects.DeletePhase)

	tickets := handler.NewTicketHandler(svc.Tickets)
	g.GET("/tickets", tickets.List)
	g.GET("/tickets/:id", tickets.Get)
	g.POST("/projects/:id/tickets", tickets.Create)
	g.PATCH("/tickets/:id", tickets.Update)
	g.DELETE("/tickets/:id", tickets.Delete)

	docs := handler.NewDocumentHandler(svc.Documents)
	g.GET("/projects/:id/documents", docs.List)
	g.POST("/projects/:id/documents", docs.Upload)
	g.DELETE("/documents/:id", docs.Delete)
	g.POST("/documents/sign", docs.Sign)

	chat := handler.NewChatHandler()
	g.GET("/conversations", chat.Conversations)
	g.GET("/conversations/unread", chat.TotalUnread)
	g.GET("/projects/:id/messages", chat.Conversation)
	g.POST("/projects/:id/messages", chat.Send)
	g.DELETE("/projects/:id/messages", chat.DeleteConversation)
	g.POST("/projects/:id/messages/read", chat.MarkRead)
	g.GET("/projects/:id/messages/unread", chat.Unread)
	g.DELETE("/messages/:id", chat.DeleteMessage)
	g.GET("/messages/stream", chat.Stream)

	events := handler.NewEventHandler(svc.Events)
	g.GET("/events", events.List)
	g.POST("/events", events.Create)
	g.GET("/events/upcoming", events.Upcoming)
	g.GET("/events/:id", events.Get)
	g.PUT("/events/:id", events.Update)
	g.DELETE("/events/:id", events.Delete)
}

func registerSuperAdmin(g *echo.Group, svc Services, log zerolog.Logger) {
	h := handler.NewSuperAdminHandler(svc.SuperAdmin)
	g.GET("/stealth", h.StealthStatus)
	g.POST("/stealth/unlock", h.Unlock)
	g.POST("/stealth/lock", h.Lock)

	guarded := g.Group("", middleware.RequireSuperAdmin(log))
	guarded.POST("/admins", h.CreateAdmin)
	guarded.GET("/users", h.AuthUsers)
	guarded.POST("/users/promote", h.Promote)
}

func registerClient(g *echo.Group) {
	h := handler.NewClientHandler()
	g.GET("/project", h.Project)
	g.GET("/dashboard", h.Dashboard)
	g.GET("/timeline", h.Timeline)
	g.GET("/documents", h.Documents)
	g.POST("/documents/sign", h.SignDocument)
	g.GET("/messages", h.Messages)
	g.POST("/messages", h.SendMessage)
	g.POST("/messages/read", h.MarkRead)
	g.GET("/messages/stream", h.StreamMessages)
	g.GET("/tickets", h.Tickets)
	g.POST("/tickets", h.CreateTicket)
	g.GET("/profile", h.Profile)
	g.PUT("/profile", h.UpdateProfile)
	g.POST("/profile/photo", h.UploadPhoto)
}

func registerNotifications(g *echo.Group, log zerolog.Logger) {
	mount := func(g *echo.Group, h *handler.NotificationHandler) {
		g.GET("", h.List)
		g.POST("", h.Notify)
		g.GET("/unread", h.Unread)
		g.POST("/read-all", h.MarkAllRead)
		g.POST("/:id/read", h.MarkRead)
		g.GET("/filter", h.Filter)
		g.PUT("/filter", h.SetFilter)
		g.GET("/preferences", h.Preferences)
		g.PUT("/preferences", h.SetPreferences)
	}
	mount(g.Group("/admin", middleware.RequireAdmin(log)), handler.NewAdminNotificationHandler())
	mount(g.Group("/client", middleware.RequireClient(log)), handler.NewClientNotificationHandler())
}

// requestLogger writes one structured entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
