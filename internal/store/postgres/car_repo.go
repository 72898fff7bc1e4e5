package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carpool-service/internal/models"
	"carpool-service/internal/store"
	"carpool-service/pkg/logger"
)

type carRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

const carColumns = "id,user_id,make,model,year,color,registration_number," +
	"seating_capacity,verification_status,documents_uploaded,created_at"

func scanCar(row pgx.Row) (*models.Car, error) {
	var c models.Car
	err := row.Scan(&c.ID, &c.UserID, &c.Make, &c.Model, &c.Year, &c.Color,
		&c.RegistrationNumber, &c.SeatingCapacity, &c.VerificationStatus,
		&c.DocumentsUploaded, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *carRepo) Create(ctx context.Context, c *models.Car) (*models.Car, error) {
	id := uuid.New().String()
	// new cars always enter the queue as pending
	row := r.db.QueryRow(ctx,
		`INSERT INTO cars (id,user_id,make,model,year,color,registration_number,
		                   seating_capacity,verification_status,documents_uploaded)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,'pending',$9)
		 RETURNING `+carColumns,
		id, c.UserID, c.Make, c.Model, c.Year, c.Color,
		c.RegistrationNumber, c.SeatingCapacity, c.DocumentsUploaded)
	created, err := scanCar(row)
	if err != nil {
		err = mapUnique(err)
		if !errors.Is(err, store.ErrDuplicate) {
			r.log.Error("failed to create car", logger.Error(err))
		}
		return nil, err
	}
	return created, nil
}

func (r *carRepo) GetByID(ctx context.Context, id string) (*models.Car, error) {
	return scanCar(r.db.QueryRow(ctx,
		`SELECT `+carColumns+` FROM cars WHERE id=$1`, id))
}

func (r *carRepo) GetByUser(ctx context.Context, userID string) ([]*models.Car, error) {
	return r.list(ctx,
		`SELECT `+carColumns+` FROM cars WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *carRepo) UpdateVerification(ctx context.Context, id, status string) (*models.Car, error) {
	return scanCar(r.db.QueryRow(ctx,
		`UPDATE cars SET verification_status=$1 WHERE id=$2 RETURNING `+carColumns,
		status, id))
}

func (r *carRepo) GetPending(ctx context.Context) ([]*models.Car, error) {
	return r.list(ctx,
		`SELECT `+carColumns+` FROM cars WHERE verification_status='pending' ORDER BY created_at`)
}

func (r *carRepo) list(ctx context.Context, query string, args ...any) ([]*models.Car, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list cars", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var cars []*models.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}
