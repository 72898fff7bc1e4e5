package bookings

import (
	"context"
	"errors"

	"carpool-service/internal/events"
	"carpool-service/internal/models"
	"carpool-service/internal/store"
	"carpool-service/pkg/kafka"
	"carpool-service/pkg/logger"
)

// ErrRideNotActive is returned when booking a completed or cancelled ride.
var ErrRideNotActive = errors.New("ride is not active")

// RideCache invalidates cached ride reads after a seat count changes;
// *redis.Client satisfies it.
type RideCache interface {
	InvalidateRide(ctx context.Context, rideID string) error
}

// Service contains booking business logic.
type Service struct {
	bookings  store.IBookingStorage
	rides     store.IRideStorage
	cache     RideCache
	publisher events.Publisher
	log       logger.ILogger
}

func NewService(bookings store.IBookingStorage, rides store.IRideStorage, cache RideCache, publisher events.Publisher, log logger.ILogger) *Service {
	return &Service{bookings: bookings, rides: rides, cache: cache, publisher: publisher, log: log}
}

// Create books seats on a ride. The seat check and decrement happen inside
// the storage transaction, so two concurrent requests for the last seats
// cannot both succeed; the precheck here only produces friendlier errors
// for the common cases.
func (s *Service) Create(ctx context.Context, passengerID string, req CreateRequest) (*models.Booking, error) {
	ride, err := s.rides.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}
	if ride.Status != models.RideActive {
		return nil, ErrRideNotActive
	}
	if ride.AvailableSeats < req.SeatsBooked {
		return nil, store.ErrInsufficientSeats
	}

	booking, err := s.bookings.Create(ctx, &models.Booking{
		RideID:      req.RideID,
		PassengerID: passengerID,
		SeatsBooked: req.SeatsBooked,
		TotalFare:   req.TotalFare,
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateRide(ctx, req.RideID); err != nil {
		s.log.Warning("failed to invalidate ride cache", logger.Error(err))
	}

	go func() {
		ev := events.BookingCreatedEvent{
			BookingID:   booking.ID,
			RideID:      booking.RideID,
			DriverID:    ride.DriverID,
			PassengerID: booking.PassengerID,
			SeatsBooked: booking.SeatsBooked,
			TotalFare:   booking.TotalFare,
			SeatsLeft:   ride.AvailableSeats - booking.SeatsBooked,
		}
		if err := s.publisher.Publish(context.Background(), kafka.TopicBookingCreated, booking.ID, ev); err != nil {
			s.log.Error("failed to publish booking.created", logger.Error(err))
		}
	}()

	return booking, nil
}

// ByPassenger returns the caller's bookings, most recent first.
func (s *Service) ByPassenger(ctx context.Context, passengerID string) ([]*models.Booking, error) {
	return s.bookings.ByPassenger(ctx, passengerID)
}
