package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// SessionStore mocks the auth session registry.
type SessionStore struct{ mock.Mock }

func (m *SessionStore) StoreSession(ctx context.Context, jti, userID string, ttl time.Duration) error {
	args := m.Called(ctx, jti, userID, ttl)
	return args.Error(0)
}

func (m *SessionStore) SessionExists(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *SessionStore) DeleteSession(ctx context.Context, jti string) error {
	args := m.Called(ctx, jti)
	return args.Error(0)
}

// Publisher mocks the outbound event contract.
type Publisher struct{ mock.Mock }

func (m *Publisher) Publish(ctx context.Context, topic, key string, value any) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

// RideCache mocks the ride read-cache.
type RideCache struct{ mock.Mock }

func (m *RideCache) CacheRide(ctx context.Context, rideID string, data []byte) error {
	args := m.Called(ctx, rideID, data)
	return args.Error(0)
}

func (m *RideCache) GetCachedRide(ctx context.Context, rideID string) ([]byte, error) {
	args := m.Called(ctx, rideID)
	if v := args.Get(0); v != nil {
		return v.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RideCache) InvalidateRide(ctx context.Context, rideID string) error {
	args := m.Called(ctx, rideID)
	return args.Error(0)
}
