package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/tde-services/project-portal/internal/api/handler"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/pkg/metrics"
)

// Identification of the browser. The device cookie outlives the browser
// session; the tab id comes from the X-Tab-ID header a page keeps in its
// session storage, or from a session cookie.
const (
	DeviceCookie = "portal_device"
	TabCookie    = "portal_tab"
	TabHeader    = "X-Tab-ID"

	deviceCookieMaxAge = 365 * 24 * 60 * 60
	defaultScopeTTL    = 12 * time.Hour
)

// ScopeBuilder wires the services of one tab.
type ScopeBuilder interface {
	New(ctx context.Context, tabID, deviceID string, tab, device ports.KeyValueStore) *ports.Scope
}

// RegistryConfig supplies the stores a scope is built over.
type RegistryConfig struct {
	Builder ScopeBuilder
	// TabStore returns the short-lived store of a tab key.
	TabStore func(key string) ports.KeyValueStore
	// DropTab forgets the short-lived store of a tab key.
	DropTab func(key string)
	// DeviceStore returns the durable store of a device.
	DeviceStore func(deviceID string) ports.KeyValueStore
	// TTL is the idle time after which a scope is closed.
	TTL time.Duration
}

// ScopeRegistry keeps the scope of every live tab. Idle scopes expire and
// are closed together with their tab store.
type ScopeRegistry struct {
	cfg    RegistryConfig
	scopes *gocache.Cache
	flight singleflight.Group
}

func NewScopeRegistry(cfg RegistryConfig) *ScopeRegistry {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultScopeTTL
	}
	r := &ScopeRegistry{cfg: cfg, scopes: gocache.New(cfg.TTL, time.Minute)}
	r.scopes.OnEvicted(func(key string, v any) {
		if sc, ok := v.(*ports.Scope); ok {
			sc.Close()
		}
		if cfg.DropTab != nil {
			cfg.DropTab(key)
		}
		metrics.ActiveScopes.Dec()
	})
	return r
}

func scopeKey(deviceID, tabID string) string {
	return deviceID + ":" + tabID
}

// Get returns the scope of the tab, building it on first use. Every call
// restarts the idle timer.
func (r *ScopeRegistry) Get(ctx context.Context, deviceID, tabID string) *ports.Scope {
	key := scopeKey(deviceID, tabID)
	if v, ok := r.scopes.Get(key); ok {
		r.scopes.SetDefault(key, v)
		return v.(*ports.Scope)
	}
	v, _, _ := r.flight.Do(key, func() (any, error) {
		if v, ok := r.scopes.Get(key); ok {
			return v, nil
		}
		sc := r.cfg.Builder.New(ctx, tabID, deviceID, r.cfg.TabStore(key), r.cfg.DeviceStore(deviceID))
		r.scopes.SetDefault(key, sc)
		metrics.ActiveScopes.Inc()
		return sc, nil
	})
	return v.(*ports.Scope)
}

// Len reports the live scopes.
func (r *ScopeRegistry) Len() int {
	return r.scopes.ItemCount()
}

// Close closes every scope.
func (r *ScopeRegistry) Close() {
	for key := range r.scopes.Items() {
		r.scopes.Delete(key)
	}
}

// Scope identifies the device and tab of the request, issuing ids when they
// are missing, and injects the tab scope into the context.
func Scope(reg *ScopeRegistry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			deviceID, ok := validID(cookieValue(c, DeviceCookie))
			if !ok {
				c.SetCookie(&http.Cookie{
					Name:     DeviceCookie,
					Value:    deviceID,
					Path:     "/",
					MaxAge:   deviceCookieMaxAge,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			tabID, ok := validID(c.Request().Header.Get(TabHeader))
			if !ok {
				if tabID, ok = validID(cookieValue(c, TabCookie)); !ok {
					c.SetCookie(&http.Cookie{
						Name:     TabCookie,
						Value:    tabID,
						Path:     "/",
						HttpOnly: true,
						SameSite: http.SameSiteLaxMode,
					})
				}
			}
			c.Response().Header().Set(TabHeader, tabID)

			c.Set(handler.ScopeKey, reg.Get(c.Request().Context(), deviceID, tabID))
			return next(c)
		}
	}
}

func cookieValue(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}

// validID returns raw when it is a UUID, a fresh id otherwise.
func validID(raw string) (string, bool) {
	if id, err := uuid.Parse(raw); err == nil {
		return id.String(), true
	}
	return uuid.NewString(), false
}
