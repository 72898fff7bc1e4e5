package models

import "time"

// Ride lifecycle states.
const (
	RideActive    = "active"
	RideCompleted = "completed"
	RideCancelled = "cancelled"
)

// RidePreferences are the structured flags a driver sets on a ride.
type RidePreferences struct {
	InstantBooking bool `json:"instantBooking"`
	WomenOnly      bool `json:"womenOnly"`
	NoSmoking      bool `json:"noSmoking"`
}

// Ride represents a published ride offer.
type Ride struct {
	ID                   string           `json:"id"`
	DriverID             string           `json:"driver_id"`
	CarID                string           `json:"car_id"`
	PickupLocation       string           `json:"pickup_location"`
	PickupLatitude       *float64         `json:"pickup_latitude,omitempty"`
	PickupLongitude      *float64         `json:"pickup_longitude,omitempty"`
	Destination          string           `json:"destination"`
	DestinationLatitude  *float64         `json:"destination_latitude,omitempty"`
	DestinationLongitude *float64         `json:"destination_longitude,omitempty"`
	DepartureDate        time.Time        `json:"departure_date"`
	DepartureTime        string           `json:"departure_time"`
	AvailableSeats       int              `json:"available_seats"`
	FarePerSeat          float64          `json:"fare_per_seat"`
	AdditionalInfo       *string          `json:"additional_info,omitempty"`
	Preferences          *RidePreferences `json:"preferences,omitempty"`
	Status               string           `json:"status"`
	CreatedAt            time.Time        `json:"created_at"`
}

// RideWithDetails is a ride enriched with its driver, car, and bookings.
type RideWithDetails struct {
	Ride
	Driver   User      `json:"driver"`
	Car      Car       `json:"car"`
	Bookings []Booking `json:"bookings"`
}
