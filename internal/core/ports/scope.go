package ports

// Scope bundles the services bound to one browser tab. Stateless entity
// services are shared and not part of it.
type Scope struct {
	TabID        string
	DeviceID     string
	Admin        AdminAuthService
	Client       ClientAuthService
	ClientPortal ClientPortalService
	Chat         ChatService
	AdminInbox   NotificationInbox
	ClientInbox  NotificationInbox
	AdminRelay   AlertRelay
	ClientRelay  AlertRelay
	Stealth      StealthGate
}

// Close releases the scope's realtime channels.
func (s *Scope) Close() {
	for _, r := range []AlertRelay{s.AdminRelay, s.ClientRelay} {
		if r != nil {
			r.Stop()
		}
	}
	if s.Chat != nil {
		s.Chat.Unsubscribe()
	}
	if s.ClientPortal != nil {
		s.ClientPortal.UnsubscribeMessages()
	}
	if c, ok := s.Admin.(interface{ Close() }); ok {
		c.Close()
	}
}
