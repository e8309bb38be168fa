package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/pkg/logger"
)

// IdentityFactory opens an identity client whose tokens persist in the
// device store.
type IdentityFactory func(device ports.KeyValueStore) ports.IdentityProvider

// ScopeDeps are the shared collaborators every tab scope is built from.
type ScopeDeps struct {
	Identity   IdentityFactory
	RPC        ports.ProcedureCaller
	Profiles   ports.ProfileRepository
	Repos      ClientPortalRepos
	Storage    ports.ObjectStorage
	Realtime   ports.Realtime
	Events     ports.AdminEventService
	Auth       AuthConfig
	TTL        time.Duration
	StealthKey string
	Now        func() time.Time
	Log        zerolog.Logger
}

type ScopeFactory struct {
	deps ScopeDeps
}

func NewScopeFactory(deps ScopeDeps) *ScopeFactory {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &ScopeFactory{deps: deps}
}

// New wires the services of one tab over its short-lived store and its
// device's durable store, and resolves any identity session the device
// already holds.
func (f *ScopeFactory) New(ctx context.Context, tabID, deviceID string, tab, device ports.KeyValueStore) *ports.Scope {
	d := f.deps
	log := logger.ForTab(d.Log, tabID, deviceID)

	sessions := NewSessionStore(tab, device, d.TTL, d.Now, log)
	admin := NewAuthService(d.Identity(device), d.Profiles, sessions, d.Auth, log)
	if err := admin.Init(ctx); err != nil {
		log.Warn().Err(err).Msg("identity session not restored")
	}
	client := NewClientAuthService(d.RPC, d.Repos.Projects, sessions, log)

	adminInbox := NewNotificationInbox(device, "admin", d.Now, log)
	clientInbox := NewNotificationInbox(device, "client", d.Now, log)

	return &ports.Scope{
		TabID:        tabID,
		DeviceID:     deviceID,
		Admin:        admin,
		Client:       client,
		ClientPortal: NewClientPortalService(client, d.RPC, d.Repos, d.Storage, d.Realtime, d.Now, log),
		Chat:         NewChatService(d.Repos.Messages, d.Repos.Projects, d.Realtime, log),
		AdminInbox:   adminInbox,
		ClientInbox:  clientInbox,
		AdminRelay:   NewAdminAlertRelay(d.Realtime, d.Events, adminInbox, log),
		ClientRelay:  NewClientAlertRelay(d.Realtime, clientInbox, client.ProjectID, log),
		Stealth:      NewStealthGate(device, d.StealthKey, d.Now, log),
	}
}
