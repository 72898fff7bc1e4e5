package rides

import (
	"context"
	"encoding/json"
	"time"

	"carpool-service/internal/events"
	"carpool-service/internal/models"
	"carpool-service/internal/store"
	"carpool-service/pkg/kafka"
	"carpool-service/pkg/logger"
)

// Cache is the ride read-cache contract; *redis.Client satisfies it.
type Cache interface {
	CacheRide(ctx context.Context, rideID string, data []byte) error
	GetCachedRide(ctx context.Context, rideID string) ([]byte, error)
}

// Service contains ride business logic.
type Service struct {
	rides     store.IRideStorage
	cache     Cache
	publisher events.Publisher
	log       logger.ILogger
}

func NewService(rides store.IRideStorage, cache Cache, publisher events.Publisher, log logger.ILogger) *Service {
	return &Service{rides: rides, cache: cache, publisher: publisher, log: log}
}

// Publish creates an active ride offer and announces it.
func (s *Service) Publish(ctx context.Context, driverID string, req CreateRequest) (*models.Ride, error) {
	date, err := ParseDate(req.DepartureDate)
	if err != nil {
		return nil, err
	}

	ride, err := s.rides.Create(ctx, &models.Ride{
		DriverID:             driverID,
		CarID:                req.CarID,
		PickupLocation:       req.PickupLocation,
		PickupLatitude:       req.PickupLatitude,
		PickupLongitude:      req.PickupLongitude,
		Destination:          req.Destination,
		DestinationLatitude:  req.DestinationLatitude,
		DestinationLongitude: req.DestinationLongitude,
		DepartureDate:        date,
		DepartureTime:        req.DepartureTime,
		AvailableSeats:       req.AvailableSeats,
		FarePerSeat:          req.FarePerSeat,
		AdditionalInfo:       req.AdditionalInfo,
		Preferences:          req.Preferences,
	})
	if err != nil {
		return nil, err
	}

	go func() {
		ev := events.RidePublishedEvent{
			RideID:         ride.ID,
			DriverID:       ride.DriverID,
			PickupLocation: ride.PickupLocation,
			Destination:    ride.Destination,
			DepartureDate:  ride.DepartureDate.Format(time.RFC3339),
			AvailableSeats: ride.AvailableSeats,
			FarePerSeat:    ride.FarePerSeat,
		}
		if err := s.publisher.Publish(context.Background(), kafka.TopicRidePublished, ride.ID, ev); err != nil {
			s.log.Error("failed to publish ride.published", logger.Error(err))
		}
	}()

	return ride, nil
}

// GetByID returns a ride with driver, car, and bookings, serving from the
// cache when it can. Cache entries are dropped whenever a booking changes
// the seat count, so a hit is as fresh as the last write.
func (s *Service) GetByID(ctx context.Context, id string) (*models.RideWithDetails, error) {
	if data, err := s.cache.GetCachedRide(ctx, id); err == nil && data != nil {
		var cached models.RideWithDetails
		if json.Unmarshal(data, &cached) == nil {
			return &cached, nil
		}
	}

	ride, err := s.rides.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(ride); err == nil {
		if err := s.cache.CacheRide(ctx, id, data); err != nil {
			s.log.Warning("failed to cache ride", logger.Error(err))
		}
	}
	return ride, nil
}

// Search finds active rides matching the pickup/destination substrings on
// or after the given date.
func (s *Service) Search(ctx context.Context, pickup, destination string, date time.Time) ([]*models.RideWithDetails, error) {
	return s.rides.Search(ctx, pickup, destination, date)
}

// ByDriver returns a driver's rides, most recent first.
func (s *Service) ByDriver(ctx context.Context, driverID string) ([]*models.RideWithDetails, error) {
	return s.rides.GetByDriver(ctx, driverID)
}
