package rides

import (
	"time"

	"carpool-service/internal/models"
	"carpool-service/pkg/validation"
)

// CreateRequest is the body for POST /api/rides.
type CreateRequest struct {
	CarID                string                  `json:"car_id"`
	PickupLocation       string                  `json:"pickup_location"`
	PickupLatitude       *float64                `json:"pickup_latitude,omitempty"`
	PickupLongitude      *float64                `json:"pickup_longitude,omitempty"`
	Destination          string                  `json:"destination"`
	DestinationLatitude  *float64                `json:"destination_latitude,omitempty"`
	DestinationLongitude *float64                `json:"destination_longitude,omitempty"`
	DepartureDate        string                  `json:"departure_date"`
	DepartureTime        string                  `json:"departure_time"`
	AvailableSeats       int                     `json:"available_seats"`
	FarePerSeat          float64                 `json:"fare_per_seat"`
	AdditionalInfo       *string                 `json:"additional_info,omitempty"`
	Preferences          *models.RidePreferences `json:"preferences,omitempty"`
}

func (r CreateRequest) Validate() validation.Errors {
	var errs validation.Errors
	if r.CarID == "" {
		errs.Add("car_id", "is required")
	}
	if r.PickupLocation == "" {
		errs.Add("pickup_location", "is required")
	}
	if r.Destination == "" {
		errs.Add("destination", "is required")
	}
	if _, err := ParseDate(r.DepartureDate); err != nil {
		errs.Add("departure_date", "must be an RFC 3339 timestamp or YYYY-MM-DD")
	}
	if r.DepartureTime == "" {
		errs.Add("departure_time", "is required")
	}
	if r.AvailableSeats < 1 {
		errs.Add("available_seats", "must be at least 1")
	}
	if r.FarePerSeat <= 0 {
		errs.Add("fare_per_seat", "must be positive")
	}
	if r.PickupLatitude != nil && r.PickupLongitude != nil &&
		!validation.ValidateCoordinates(*r.PickupLatitude, *r.PickupLongitude) {
		errs.Add("pickup_latitude", "coordinates out of range")
	}
	if r.DestinationLatitude != nil && r.DestinationLongitude != nil &&
		!validation.ValidateCoordinates(*r.DestinationLatitude, *r.DestinationLongitude) {
		errs.Add("destination_latitude", "coordinates out of range")
	}
	return errs
}

// ParseDate accepts a full timestamp or a bare date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
