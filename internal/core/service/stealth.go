package service

import (
	"context"
	"crypto/subtle"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/ports"
)

const (
	keyStealthUntil = "tde_superadmin_access_until"
	StealthTTL      = 12 * time.Hour
)

type stealthGate struct {
	device ports.KeyValueStore
	key    string
	now    func() time.Time
	log    zerolog.Logger
}

// NewStealthGate guards the hidden superadmin entry point of a device. An
// empty key keeps the gate locked.
func NewStealthGate(device ports.KeyValueStore, key string, now func() time.Time, log zerolog.Logger) ports.StealthGate {
	if now == nil {
		now = time.Now
	}
	return &stealthGate{device: device, key: key, now: now, log: log}
}

func (g *stealthGate) HasAccess(ctx context.Context) bool {
	raw, ok, err := g.device.Get(ctx, keyStealthUntil)
	if err != nil {
		g.log.Warn().Err(err).Msg("stealth flag read failed")
		return false
	}
	if !ok {
		return false
	}
	until, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || g.now().Unix() >= until {
		g.Lock(ctx)
		return false
	}
	return true
}

// Unlock opens the gate for StealthTTL when key matches.
func (g *stealthGate) Unlock(ctx context.Context, key string) bool {
	if g.key == "" || subtle.ConstantTimeCompare([]byte(g.key), []byte(key)) != 1 {
		return false
	}
	until := g.now().Add(StealthTTL).Unix()
	if err := g.device.Set(ctx, keyStealthUntil, strconv.FormatInt(until, 10)); err != nil {
		g.log.Warn().Err(err).Msg("stealth flag write failed")
		return false
	}
	return true
}

func (g *stealthGate) Lock(ctx context.Context) {
	if err := g.device.Delete(ctx, keyStealthUntil); err != nil {
		g.log.Warn().Err(err).Msg("stealth flag delete failed")
	}
}
