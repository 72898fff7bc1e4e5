// Package mocks holds hand-written testify mocks for the storage and
// messaging contracts used by handler and service tests.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"carpool-service/internal/models"
)

type UserStore struct{ mock.Mock }

func (m *UserStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	args := m.Called(ctx, u)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserStore) IsAdmin(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *UserStore) PromoteToAdmin(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserStore) GetAdmins(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserStore) UpsertAdmin(ctx context.Context, u *models.User) (*models.User, error) {
	args := m.Called(ctx, u)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type CarStore struct{ mock.Mock }

func (m *CarStore) Create(ctx context.Context, c *models.Car) (*models.Car, error) {
	args := m.Called(ctx, c)
	if v := args.Get(0); v != nil {
		return v.(*models.Car), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CarStore) GetByID(ctx context.Context, id string) (*models.Car, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Car), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CarStore) GetByUser(ctx context.Context, userID string) ([]*models.Car, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]*models.Car), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CarStore) UpdateVerification(ctx context.Context, id, status string) (*models.Car, error) {
	args := m.Called(ctx, id, status)
	if v := args.Get(0); v != nil {
		return v.(*models.Car), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CarStore) GetPending(ctx context.Context) ([]*models.Car, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*models.Car), args.Error(1)
	}
	return nil, args.Error(1)
}

type RideStore struct{ mock.Mock }

func (m *RideStore) Create(ctx context.Context, r *models.Ride) (*models.Ride, error) {
	args := m.Called(ctx, r)
	if v := args.Get(0); v != nil {
		return v.(*models.Ride), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RideStore) GetByID(ctx context.Context, id string) (*models.RideWithDetails, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.RideWithDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RideStore) Search(ctx context.Context, pickup, destination string, date time.Time) ([]*models.RideWithDetails, error) {
	args := m.Called(ctx, pickup, destination, date)
	if v := args.Get(0); v != nil {
		return v.([]*models.RideWithDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RideStore) GetByDriver(ctx context.Context, driverID string) ([]*models.RideWithDetails, error) {
	args := m.Called(ctx, driverID)
	if v := args.Get(0); v != nil {
		return v.([]*models.RideWithDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RideStore) UpdateSeats(ctx context.Context, rideID string, seats int) error {
	args := m.Called(ctx, rideID, seats)
	return args.Error(0)
}

type BookingStore struct{ mock.Mock }

func (m *BookingStore) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	args := m.Called(ctx, b)
	if v := args.Get(0); v != nil {
		return v.(*models.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BookingStore) ByPassenger(ctx context.Context, passengerID string) ([]*models.Booking, error) {
	args := m.Called(ctx, passengerID)
	if v := args.Get(0); v != nil {
		return v.([]*models.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BookingStore) ByRide(ctx context.Context, rideID string) ([]*models.Booking, error) {
	args := m.Called(ctx, rideID)
	if v := args.Get(0); v != nil {
		return v.([]*models.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}
