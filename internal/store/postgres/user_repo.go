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

type userRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

const userColumns = "id,username,email,password_hash,name,phone,role,created_at"

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.Name, &u.Phone, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	id := uuid.New().String()
	// role is pinned to "user" here no matter what the caller supplied,
	// so a crafted registration body cannot inject admin.
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (id,username,email,password_hash,name,phone,role)
		 VALUES ($1,$2,$3,$4,$5,$6,'user')
		 RETURNING `+userColumns,
		id, u.Username, u.Email, u.PasswordHash, u.Name, u.Phone)
	created, err := scanUser(row)
	if err != nil {
		err = mapUnique(err)
		if !errors.Is(err, store.ErrDuplicate) {
			r.log.Error("failed to create user", logger.Error(err))
		}
		return nil, err
	}
	return created, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username=$1`, username))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *userRepo) IsAdmin(ctx context.Context, id string) (bool, error) {
	var role string
	err := r.db.QueryRow(ctx, `SELECT role FROM users WHERE id=$1`, id).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return role == models.RoleAdmin, nil
}

func (r *userRepo) PromoteToAdmin(ctx context.Context, id string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`UPDATE users SET role='admin' WHERE id=$1 RETURNING `+userColumns, id))
}

func (r *userRepo) GetAdmins(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role='admin' ORDER BY created_at`)
	if err != nil {
		r.log.Error("failed to list admins", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var admins []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, u)
	}
	return admins, rows.Err()
}

func (r *userRepo) UpsertAdmin(ctx context.Context, u *models.User) (*models.User, error) {
	id := uuid.New().String()
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (id,username,email,password_hash,name,phone,role)
		 VALUES ($1,$2,$3,$4,$5,$6,'admin')
		 ON CONFLICT (username) DO UPDATE SET role='admin'
		 RETURNING `+userColumns,
		id, u.Username, u.Email, u.PasswordHash, u.Name, u.Phone)
	return scanUser(row)
}
