package admin

import (
	"context"

	"carpool-service/internal/models"
	"carpool-service/internal/store"
)

// Service contains the admin review-queue and promotion logic.
type Service struct {
	users store.IUserStorage
	cars  store.ICarStorage
}

func NewService(users store.IUserStorage, cars store.ICarStorage) *Service {
	return &Service{users: users, cars: cars}
}

// PendingCars returns the verification queue.
func (s *Service) PendingCars(ctx context.Context) ([]*models.Car, error) {
	return s.cars.GetPending(ctx)
}

// Promote grants the admin role. There is no demotion.
func (s *Service) Promote(ctx context.Context, userID string) (*models.User, error) {
	return s.users.PromoteToAdmin(ctx, userID)
}

// Admins lists accounts holding the admin role.
func (s *Service) Admins(ctx context.Context) ([]*models.User, error) {
	return s.users.GetAdmins(ctx)
}
