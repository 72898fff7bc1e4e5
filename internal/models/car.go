package models

import "time"

// Car verification states. pending is initial; approved and rejected are
// terminal, reachable only through an admin verify action.
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// Car represents a vehicle registered by a user.
type Car struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Make               string    `json:"make"`
	Model              string    `json:"model"`
	Year               int       `json:"year"`
	Color              string    `json:"color"`
	RegistrationNumber string    `json:"registration_number"`
	SeatingCapacity    int       `json:"seating_capacity"`
	VerificationStatus string    `json:"verification_status"`
	DocumentsUploaded  bool      `json:"documents_uploaded"`
	CreatedAt          time.Time `json:"created_at"`
}
