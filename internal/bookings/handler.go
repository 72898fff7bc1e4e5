package bookings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carpool-service/internal/auth"
	"carpool-service/internal/models"
	"carpool-service/internal/store"
	"carpool-service/pkg/validation"
)

// Handler exposes booking HTTP endpoints.
type Handler struct {
	svc *Service
	mw  *auth.Middleware
}

func NewHandler(svc *Service, mw *auth.Middleware) *Handler {
	return &Handler{svc: svc, mw: mw}
}

// Routes registers the booking endpoints on the /api router.
func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequireAuth)
		r.Post("/bookings", h.HandleCreate)
		r.Get("/bookings", h.HandleList)
	})
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); !errs.OK() {
		writeValidationErrors(w, errs)
		return
	}

	claims := auth.GetClaims(r.Context())
	booking, err := h.svc.Create(r.Context(), claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Ride not found")
		case errors.Is(err, store.ErrInsufficientSeats):
			writeError(w, http.StatusBadRequest, "Not enough seats available")
		case errors.Is(err, ErrRideNotActive):
			writeError(w, http.StatusBadRequest, "Ride is not active")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetClaims(r.Context())
	list, err := h.svc.ByPassenger(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	if list == nil {
		list = []*models.Booking{}
	}
	writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeValidationErrors(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"message": "Invalid data provided",
		"errors":  errs,
	})
}
