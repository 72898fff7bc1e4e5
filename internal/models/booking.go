package models

import "time"

// Booking states.
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Booking represents seats reserved on a ride by a passenger.
type Booking struct {
	ID          string    `json:"id"`
	RideID      string    `json:"ride_id"`
	PassengerID string    `json:"passenger_id"`
	SeatsBooked int       `json:"seats_booked"`
	TotalFare   float64   `json:"total_fare"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
