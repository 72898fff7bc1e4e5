package events

import "context"

// Publisher is the outbound event contract; *kafka.Client satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

// RidePublishedEvent is published to ride.published.
type RidePublishedEvent struct {
	RideID         string  `json:"ride_id"`
	DriverID       string  `json:"driver_id"`
	PickupLocation string  `json:"pickup_location"`
	Destination    string  `json:"destination"`
	DepartureDate  string  `json:"departure_date"`
	AvailableSeats int     `json:"available_seats"`
	FarePerSeat    float64 `json:"fare_per_seat"`
}

// BookingCreatedEvent is published to booking.created.
type BookingCreatedEvent struct {
	BookingID   string  `json:"booking_id"`
	RideID      string  `json:"ride_id"`
	DriverID    string  `json:"driver_id"`
	PassengerID string  `json:"passenger_id"`
	SeatsBooked int     `json:"seats_booked"`
	TotalFare   float64 `json:"total_fare"`
	SeatsLeft   int     `json:"seats_left"`
}

// CarVerifiedEvent is published to car.verified.
type CarVerifiedEvent struct {
	CarID              string `json:"car_id"`
	OwnerID            string `json:"owner_id"`
	RegistrationNumber string `json:"registration_number"`
	Status             string `json:"status"`
}
