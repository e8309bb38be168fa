package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour || cfg.Auth.LoginRetryDelay != 250*time.Millisecond {
		t.Fatalf("unexpected auth defaults: %+v", cfg.Auth)
	}
	if cfg.Redis.DurableTTL != 720*time.Hour {
		t.Fatalf("unexpected durable ttl %s", cfg.Redis.DurableTTL)
	}
	if cfg.Auth.JWTSecret == "" || cfg.Storage.SigningSecret == "" {
		t.Fatal("development secrets should be filled in")
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":                   "9090",
		"BOOTSTRAP_ADMIN_EMAILS": "a@tde.com,b@tde.com",
		"SESSION_TTL":            "2h",
		"DB_MAX_CONNS":           "20",
		"JWT_SECRET":             "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.Postgres.MaxConns != 20 || cfg.Auth.SessionTTL != 2*time.Hour {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.Auth.BootstrapAdmins) != 2 || cfg.Auth.BootstrapAdmins[1] != "b@tde.com" {
		t.Fatalf("unexpected bootstrap list %v", cfg.Auth.BootstrapAdmins)
	}
	if cfg.Storage.SigningSecret != "s3cret" {
		t.Fatalf("signing secret should default to the JWT secret, got %q", cfg.Storage.SigningSecret)
	}
}

func TestLoadProductionRequiresSecrets(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"ENV": "production"}))
	if err == nil {
		t.Fatal("expected an error without JWT_SECRET")
	}

	_, err = load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":                    "production",
		"JWT_SECRET":             "a",
		"STORAGE_SIGNING_SECRET": "b",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"SESSION_TTL": "soon"}))
	if err == nil {
		t.Fatal("expected an error")
	}
}
