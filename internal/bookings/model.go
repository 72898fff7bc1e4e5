package bookings

import "carpool-service/pkg/validation"

// CreateRequest is the body for POST /api/bookings.
type CreateRequest struct {
	RideID      string  `json:"ride_id"`
	SeatsBooked int     `json:"seats_booked"`
	TotalFare   float64 `json:"total_fare"`
}

func (r CreateRequest) Validate() validation.Errors {
	var errs validation.Errors
	if r.RideID == "" {
		errs.Add("ride_id", "is required")
	}
	if r.SeatsBooked < 1 {
		errs.Add("seats_booked", "must be at least 1")
	}
	if r.TotalFare < 0 {
		errs.Add("total_fare", "must not be negative")
	}
	return errs
}
