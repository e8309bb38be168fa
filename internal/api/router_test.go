package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tde-services/project-portal/internal/api/handler"
	"github.com/tde-services/project-portal/internal/api/middleware"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/infrastructure/memstore"
)

type signedOutAdmin struct{ ports.AdminAuthService }

func (signedOutAdmin) RequireAdmin(context.Context, string) ports.GuardDecision {
	return ports.GuardDecision{Redirect: ports.AdminLoginPath}
}

type lockedStealth struct{ ports.StealthGate }

func (lockedStealth) HasAccess(context.Context) bool { return false }

type builder struct{}

func (builder) New(_ context.Context, tabID, deviceID string, _, _ ports.KeyValueStore) *ports.Scope {
	return &ports.Scope{TabID: tabID, DeviceID: deviceID, Admin: signedOutAdmin{}, Stealth: lockedStealth{}}
}

func TestRouter(t *testing.T) {
	tabs := memstore.NewTabs(0)
	scopes := middleware.NewScopeRegistry(middleware.RegistryConfig{
		Builder:     builder{},
		TabStore:    func(key string) ports.KeyValueStore { return tabs.For(key) },
		DropTab:     tabs.Drop,
		DeviceStore: func(id string) ports.KeyValueStore { return tabs.For("device:" + id) },
	})
	defer scopes.Close()

	e := NewRouter(Services{
		Scopes:    scopes,
		Readiness: map[string]handler.Pinger{"postgres": func(context.Context) error { return nil }},
	}, zerolog.Nop())

	tests := []struct {
		name     string
		method   string
		target   string
		wantCode int
	}{
		{"liveness", http.MethodGet, "/health", http.StatusOK},
		{"readiness", http.MethodGet, "/health/ready", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"admin signed out", http.MethodGet, "/api/admin/projects", http.StatusUnauthorized},
		{"superadmin locked", http.MethodGet, "/api/superadmin/users", http.StatusNotFound},
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/projects", nil))
	require.NotEmpty(t, rec.Header().Get(middleware.TabHeader))
	assert.JSONEq(t, `{"error":"not authenticated","redirect":"`+ports.AdminLoginPath+`"}`, rec.Body.String())
}
