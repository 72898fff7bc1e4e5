package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"carpool-service/internal/models"
	"carpool-service/internal/store"
	"carpool-service/pkg/jwt"
	"carpool-service/pkg/logger"
)

// ErrInvalidCredentials is returned for a bad username or password.
// The two cases are deliberately indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionStore is the session registry contract; *redis.Client satisfies it.
type SessionStore interface {
	StoreSession(ctx context.Context, jti, userID string, ttl time.Duration) error
	SessionExists(ctx context.Context, jti string) (bool, error)
	DeleteSession(ctx context.Context, jti string) error
}

// Service contains account and session business logic.
type Service struct {
	users    store.IUserStorage
	sessions SessionStore
	log      logger.ILogger
}

func NewService(users store.IUserStorage, sessions SessionStore, log logger.ILogger) *Service {
	return &Service{users: users, sessions: sessions, log: log}
}

// Register creates a new account and opens a session for it.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
	})
	if err != nil {
		return nil, err
	}

	return s.openSession(ctx, user)
}

// Login authenticates by username and opens a session.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.openSession(ctx, user)
}

// Logout kills the session behind the given token id.
func (s *Service) Logout(ctx context.Context, jti string) error {
	return s.sessions.DeleteSession(ctx, jti)
}

// CurrentUser fetches the authenticated user's profile.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// EnsureAdmin seeds the bootstrap admin account. Promotion is the only
// in-band path to admin, so the first admin has to come from outside it.
func (s *Service) EnsureAdmin(ctx context.Context, username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin, err := s.users.UpsertAdmin(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Name:         username,
		Phone:        "",
	})
	if err != nil {
		return err
	}
	s.log.Info("admin account ensured", logger.String("username", admin.Username))
	return nil
}

func (s *Service) openSession(ctx context.Context, user *models.User) (*AuthResponse, error) {
	token, jti, err := jwt.Generate(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.StoreSession(ctx, jti, user.ID, jwt.TTL()); err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}
