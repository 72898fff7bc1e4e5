package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carpool-service/internal/models"
	"carpool-service/internal/store"
	"carpool-service/pkg/logger"
)

type rideRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

const rideColumns = "id,driver_id,car_id,pickup_location,pickup_latitude,pickup_longitude," +
	"destination,destination_latitude,destination_longitude,departure_date,departure_time," +
	"available_seats,fare_per_seat,additional_info,preferences,status,created_at"

func scanRide(row pgx.Row) (*models.Ride, error) {
	var rd models.Ride
	err := row.Scan(&rd.ID, &rd.DriverID, &rd.CarID,
		&rd.PickupLocation, &rd.PickupLatitude, &rd.PickupLongitude,
		&rd.Destination, &rd.DestinationLatitude, &rd.DestinationLongitude,
		&rd.DepartureDate, &rd.DepartureTime,
		&rd.AvailableSeats, &rd.FarePerSeat, &rd.AdditionalInfo,
		&rd.Preferences, &rd.Status, &rd.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &rd, nil
}

func (r *rideRepo) Create(ctx context.Context, rd *models.Ride) (*models.Ride, error) {
	id := uuid.New().String()
	row := r.db.QueryRow(ctx,
		`INSERT INTO rides (id,driver_id,car_id,pickup_location,pickup_latitude,pickup_longitude,
		                    destination,destination_latitude,destination_longitude,
		                    departure_date,departure_time,available_seats,fare_per_seat,
		                    additional_info,preferences,status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,'active')
		 RETURNING `+rideColumns,
		id, rd.DriverID, rd.CarID, rd.PickupLocation, rd.PickupLatitude, rd.PickupLongitude,
		rd.Destination, rd.DestinationLatitude, rd.DestinationLongitude,
		rd.DepartureDate, rd.DepartureTime, rd.AvailableSeats, rd.FarePerSeat,
		rd.AdditionalInfo, rd.Preferences)
	created, err := scanRide(row)
	if err != nil {
		r.log.Error("failed to create ride", logger.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *rideRepo) GetByID(ctx context.Context, id string) (*models.RideWithDetails, error) {
	rd, err := scanRide(r.db.QueryRow(ctx,
		`SELECT `+rideColumns+` FROM rides WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	return r.attachDetails(ctx, rd)
}

func (r *rideRepo) Search(ctx context.Context, pickup, destination string, date time.Time) ([]*models.RideWithDetails, error) {
	return r.listWithDetails(ctx,
		`SELECT `+rideColumns+` FROM rides
		 WHERE pickup_location ILIKE '%'||$1||'%'
		   AND destination ILIKE '%'||$2||'%'
		   AND departure_date >= $3
		   AND status='active'
		 ORDER BY departure_date`,
		pickup, destination, date)
}

func (r *rideRepo) GetByDriver(ctx context.Context, driverID string) ([]*models.RideWithDetails, error) {
	return r.listWithDetails(ctx,
		`SELECT `+rideColumns+` FROM rides WHERE driver_id=$1 ORDER BY created_at DESC`,
		driverID)
}

func (r *rideRepo) UpdateSeats(ctx context.Context, rideID string, seats int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE rides SET available_seats=$1 WHERE id=$2`, seats, rideID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *rideRepo) listWithDetails(ctx context.Context, query string, args ...any) ([]*models.RideWithDetails, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list rides", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var plain []*models.Ride
	for rows.Next() {
		rd, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		plain = append(plain, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	results := make([]*models.RideWithDetails, 0, len(plain))
	for _, rd := range plain {
		detailed, err := r.attachDetails(ctx, rd)
		if err != nil {
			return nil, err
		}
		results = append(results, detailed)
	}
	return results, nil
}

// attachDetails enriches a ride with its driver, car, and bookings.
func (r *rideRepo) attachDetails(ctx context.Context, rd *models.Ride) (*models.RideWithDetails, error) {
	out := &models.RideWithDetails{Ride: *rd}

	driver, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, rd.DriverID))
	if err != nil {
		return nil, err
	}
	out.Driver = *driver

	car, err := scanCar(r.db.QueryRow(ctx,
		`SELECT `+carColumns+` FROM cars WHERE id=$1`, rd.CarID))
	if err != nil {
		return nil, err
	}
	out.Car = *car

	bookings, err := (&bookingRepo{db: r.db, log: r.log}).ByRide(ctx, rd.ID)
	if err != nil {
		return nil, err
	}
	out.Bookings = make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		out.Bookings = append(out.Bookings, *b)
	}
	return out, nil
}
