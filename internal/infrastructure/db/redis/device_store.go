package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tde-services/project-portal/internal/core/ports"
)

const defaultDurableTTL = 30 * 24 * time.Hour

// DeviceStore is the durable key-value store of one device.
// Key format: portal:device:<device_id>:<key>
//
// Every write refreshes the key's TTL, so data of devices that stop
// visiting eventually expires.
type DeviceStore struct {
	client   redis.Cmdable
	deviceID string
	ttl      time.Duration
}

var _ ports.KeyValueStore = (*DeviceStore)(nil)

// NewDeviceStore scopes client to deviceID. A ttl <= 0 uses
// defaultDurableTTL.
func NewDeviceStore(client redis.Cmdable, deviceID string, ttl time.Duration) *DeviceStore {
	if ttl <= 0 {
		ttl = defaultDurableTTL
	}
	return &DeviceStore{client: client, deviceID: deviceID, ttl: ttl}
}

// Get returns the value of key, with false when it is absent.
func (s *DeviceStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("device store get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *DeviceStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("device store set %s: %w", key, err)
	}
	return nil
}

func (s *DeviceStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("device store delete %s: %w", key, err)
	}
	return nil
}

func (s *DeviceStore) key(k string) string {
	return fmt.Sprintf("portal:device:%s:%s", s.deviceID, k)
}
