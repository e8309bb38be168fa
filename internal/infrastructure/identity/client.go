package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/ports"
)

const keyAccessToken = "identity_access_token"

// Client is the identity session of one device. The access token lives in
// the device store, so every tab of the device shares the sign-in.
type Client struct {
	svc    *Service
	device ports.KeyValueStore
	log    zerolog.Logger

	mu        sync.Mutex
	listeners map[int]func(ports.AuthEvent, *ports.AuthSession)
	nextID    int
}

var _ ports.IdentityProvider = (*Client)(nil)

func (s *Service) NewClient(device ports.KeyValueStore, log zerolog.Logger) *Client {
	return &Client{
		svc:       s,
		device:    device,
		log:       log.With().Str("component", "identity").Logger(),
		listeners: make(map[int]func(ports.AuthEvent, *ports.AuthSession)),
	}
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*ports.AuthSession, error) {
	sess, err := c.svc.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := c.device.Set(ctx, keyAccessToken, sess.AccessToken); err != nil {
		return nil, fmt.Errorf("persist session: %w", transient(err))
	}
	c.emit(ports.AuthSignedIn, sess)
	return sess, nil
}

// Session resolves the stored token. Invalid or expired tokens are removed
// and read as signed out.
func (c *Client) Session(ctx context.Context) (*ports.AuthSession, error) {
	token, ok, err := c.device.Get(ctx, keyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok || token == "" {
		return nil, nil
	}
	sess, err := c.svc.Resolve(ctx, token)
	if errors.Is(err, ErrInvalidToken) {
		c.log.Debug().Msg("stored token rejected, signing out")
		if derr := c.device.Delete(ctx, keyAccessToken); derr != nil {
			c.log.Warn().Err(derr).Msg("drop stale token failed")
		}
		return nil, nil
	}
	return sess, err
}

func (c *Client) SignOut(ctx context.Context) error {
	if err := c.device.Delete(ctx, keyAccessToken); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	c.emit(ports.AuthSignedOut, nil)
	return nil
}

func (c *Client) OnAuthStateChange(fn func(ports.AuthEvent, *ports.AuthSession)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

func (c *Client) emit(ev ports.AuthEvent, sess *ports.AuthSession) {
	c.mu.Lock()
	fns := make([]func(ports.AuthEvent, *ports.AuthSession), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(ev, sess)
	}
}
