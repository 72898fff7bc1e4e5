package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"carpool-service/internal/store"
	"carpool-service/pkg/logger"
)

// Store aggregates the pgx-backed repositories.
type Store struct {
	pool *pgxpool.Pool
	log  logger.ILogger
}

func New(pool *pgxpool.Pool, log logger.ILogger) store.IStorage {
	return &Store{pool: pool, log: log}
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) GetPool() *pgxpool.Pool {
	return s.pool
}

func (s *Store) User() store.IUserStorage       { return &userRepo{db: s.pool, log: s.log} }
func (s *Store) Car() store.ICarStorage         { return &carRepo{db: s.pool, log: s.log} }
func (s *Store) Ride() store.IRideStorage       { return &rideRepo{db: s.pool, log: s.log} }
func (s *Store) Booking() store.IBookingStorage { return &bookingRepo{db: s.pool, log: s.log} }

// mapUnique converts a unique-constraint violation into store.ErrDuplicate.
func mapUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return store.ErrDuplicate
	}
	return err
}
