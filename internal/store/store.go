package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"carpool-service/internal/models"
)

// Sentinel errors the HTTP layer translates into status codes.
var (
	// ErrNotFound signals an absent entity. Lookups treat absence as a
	// normal outcome, not a storage failure.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate signals a unique-constraint collision
	// (username, email, registration number).
	ErrDuplicate = errors.New("already exists")

	// ErrInsufficientSeats signals that a booking asked for more seats
	// than the ride has left.
	ErrInsufficientSeats = errors.New("not enough seats available")
)

type IStorage interface {
	User() IUserStorage
	Car() ICarStorage
	Ride() IRideStorage
	Booking() IBookingStorage
	Close()
	GetPool() *pgxpool.Pool
}

type IUserStorage interface {
	// Create inserts a new account. The stored role is always "user"
	// regardless of what the caller put in u.Role.
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	IsAdmin(ctx context.Context, id string) (bool, error)
	// PromoteToAdmin is one-way; no demotion operation exists.
	PromoteToAdmin(ctx context.Context, id string) (*models.User, error)
	GetAdmins(ctx context.Context) ([]*models.User, error)
	// UpsertAdmin seeds the bootstrap admin account at startup.
	UpsertAdmin(ctx context.Context, u *models.User) (*models.User, error)
}

type ICarStorage interface {
	// Create inserts with verification_status "pending".
	Create(ctx context.Context, c *models.Car) (*models.Car, error)
	GetByID(ctx context.Context, id string) (*models.Car, error)
	GetByUser(ctx context.Context, userID string) ([]*models.Car, error)
	UpdateVerification(ctx context.Context, id, status string) (*models.Car, error)
	GetPending(ctx context.Context) ([]*models.Car, error)
}

type IRideStorage interface {
	// Create inserts with status "active".
	Create(ctx context.Context, r *models.Ride) (*models.Ride, error)
	GetByID(ctx context.Context, id string) (*models.RideWithDetails, error)
	// Search matches pickup and destination as case-insensitive
	// substrings, filters to departure_date >= date and status=active,
	// ordered by departure_date ascending.
	Search(ctx context.Context, pickup, destination string, date time.Time) ([]*models.RideWithDetails, error)
	GetByDriver(ctx context.Context, driverID string) ([]*models.RideWithDetails, error)
	// UpdateSeats sets available_seats unconditionally; callers own the
	// invariant. The booking path never uses this — it goes through
	// IBookingStorage.Create's guarded decrement.
	UpdateSeats(ctx context.Context, rideID string, seats int) error
}

type IBookingStorage interface {
	// Create reserves seats and inserts the booking in one transaction.
	// The seat decrement is conditional on available_seats >= b.SeatsBooked;
	// losing that race returns ErrInsufficientSeats and nothing is written.
	Create(ctx context.Context, b *models.Booking) (*models.Booking, error)
	ByPassenger(ctx context.Context, passengerID string) ([]*models.Booking, error)
	ByRide(ctx context.Context, rideID string) ([]*models.Booking, error)
}
