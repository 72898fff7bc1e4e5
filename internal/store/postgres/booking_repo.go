package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carpool-service/internal/models"
	"carpool-service/internal/store"
	"carpool-service/pkg/logger"
)

type bookingRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

const bookingColumns = "id,ride_id,passenger_id,seats_booked,total_fare,status,created_at"

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.RideID, &b.PassengerID,
		&b.SeatsBooked, &b.TotalFare, &b.Status, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Create reserves seats and records the booking atomically. The decrement
// is guarded by available_seats >= n, so two concurrent bookings cannot
// both take the last seats: the loser sees zero affected rows and the
// transaction rolls back with ErrInsufficientSeats.
func (r *bookingRepo) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE rides SET available_seats = available_seats - $1
		 WHERE id=$2 AND status='active' AND available_seats >= $1`,
		b.SeatsBooked, b.RideID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		// ride missing, inactive, or short on seats
		var exists bool
		_ = tx.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM rides WHERE id=$1)", b.RideID).Scan(&exists)
		if !exists {
			return nil, store.ErrNotFound
		}
		return nil, store.ErrInsufficientSeats
	}

	id := uuid.New().String()
	created, err := scanBooking(tx.QueryRow(ctx,
		`INSERT INTO bookings (id,ride_id,passenger_id,seats_booked,total_fare,status)
		 VALUES ($1,$2,$3,$4,$5,'confirmed')
		 RETURNING `+bookingColumns,
		id, b.RideID, b.PassengerID, b.SeatsBooked, b.TotalFare))
	if err != nil {
		r.log.Error("failed to insert booking", logger.Error(err))
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit booking tx: %w", err)
	}
	return created, nil
}

func (r *bookingRepo) ByPassenger(ctx context.Context, passengerID string) ([]*models.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE passenger_id=$1 ORDER BY created_at DESC`,
		passengerID)
}

func (r *bookingRepo) ByRide(ctx context.Context, rideID string) ([]*models.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE ride_id=$1 ORDER BY created_at`,
		rideID)
}

func (r *bookingRepo) list(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list bookings", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
