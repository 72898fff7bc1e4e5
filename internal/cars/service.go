package cars

import (
	"context"
	"errors"

	"carpool-service/internal/events"
	"carpool-service/internal/models"
	"carpool-service/internal/store"
	"carpool-service/pkg/kafka"
	"carpool-service/pkg/logger"
)

// ErrInvalidStatus is returned for a verify target outside
// approved/rejected.
var ErrInvalidStatus = errors.New("invalid verification status")

// Service contains car business logic.
type Service struct {
	cars      store.ICarStorage
	publisher events.Publisher
	log       logger.ILogger
}

func NewService(cars store.ICarStorage, publisher events.Publisher, log logger.ILogger) *Service {
	return &Service{cars: cars, publisher: publisher, log: log}
}

// Register adds a car for the given owner; it enters the verification
// queue as pending.
func (s *Service) Register(ctx context.Context, ownerID string, req CreateRequest) (*models.Car, error) {
	return s.cars.Create(ctx, &models.Car{
		UserID:             ownerID,
		Make:               req.Make,
		Model:              req.Model,
		Year:               req.Year,
		Color:              req.Color,
		RegistrationNumber: req.RegistrationNumber,
		SeatingCapacity:    req.SeatingCapacity,
		DocumentsUploaded:  req.DocumentsUploaded,
	})
}

// ListByOwner returns the caller's cars.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*models.Car, error) {
	return s.cars.GetByUser(ctx, ownerID)
}

// Verify moves a car to approved or rejected and announces the decision.
// Only those two targets exist; pending is initial-only.
func (s *Service) Verify(ctx context.Context, carID, status string) (*models.Car, error) {
	if status != models.VerificationApproved && status != models.VerificationRejected {
		return nil, ErrInvalidStatus
	}

	car, err := s.cars.UpdateVerification(ctx, carID, status)
	if err != nil {
		return nil, err
	}

	go func() {
		ev := events.CarVerifiedEvent{
			CarID:              car.ID,
			OwnerID:            car.UserID,
			RegistrationNumber: car.RegistrationNumber,
			Status:             car.VerificationStatus,
		}
		if err := s.publisher.Publish(context.Background(), kafka.TopicCarVerified, car.ID, ev); err != nil {
			s.log.Error("failed to publish car.verified", logger.Error(err))
		}
	}()

	return car, nil
}
