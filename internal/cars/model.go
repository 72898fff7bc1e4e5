package cars

import "carpool-service/pkg/validation"

// CreateRequest is the body for POST /api/cars.
type CreateRequest struct {
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               int    `json:"year"`
	Color              string `json:"color"`
	RegistrationNumber string `json:"registration_number"`
	SeatingCapacity    int    `json:"seating_capacity"`
	DocumentsUploaded  bool   `json:"documents_uploaded"`
}

func (r CreateRequest) Validate() validation.Errors {
	var errs validation.Errors
	if r.Make == "" {
		errs.Add("make", "is required")
	}
	if r.Model == "" {
		errs.Add("model", "is required")
	}
	if !validation.ValidateYear(r.Year) {
		errs.Add("year", "must be a plausible model year")
	}
	if r.Color == "" {
		errs.Add("color", "is required")
	}
	if r.RegistrationNumber == "" {
		errs.Add("registration_number", "is required")
	}
	if r.SeatingCapacity < 1 || r.SeatingCapacity > 20 {
		errs.Add("seating_capacity", "must be between 1 and 20")
	}
	return errs
}

// VerifyRequest is the body for PATCH /api/cars/{id}/verify.
type VerifyRequest struct {
	Status string `json:"status"`
}
