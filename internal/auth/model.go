package auth

import (
	"carpool-service/internal/models"
	"carpool-service/pkg/validation"
)

// RegisterRequest is the body for POST /api/register. A role field in the
// body is ignored: every registration is stored with role "user".
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

func (r RegisterRequest) Validate() validation.Errors {
	var errs validation.Errors
	if !validation.ValidateUsername(r.Username) {
		errs.Add("username", "must be 3-50 characters")
	}
	if !validation.ValidateEmail(r.Email) {
		errs.Add("email", "must be a valid email address")
	}
	if !validation.ValidatePassword(r.Password) {
		errs.Add("password", "must be 6-100 characters")
	}
	if !validation.ValidateName(r.Name) {
		errs.Add("name", "must be 2-200 characters")
	}
	if !validation.ValidatePhone(r.Phone) {
		errs.Add("phone", "must be a valid phone number")
	}
	return errs
}

// LoginRequest is the body for POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned on register / login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
