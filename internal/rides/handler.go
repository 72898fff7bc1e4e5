package rides

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

// Handler exposes ride HTTP endpoints.
type Handler struct {
	svc *Service
	mw  *auth.Middleware
}

func NewHandler(svc *Service, mw *auth.Middleware) *Handler {
	return &Handler{svc: svc, mw: mw}
}

// Routes registers the ride endpoints on the /api router.
func (h *Handler) Routes(r chi.Router) {
	// Public: search must come before /{id}
	r.Get("/rides/search", h.HandleSearch)
	r.Get("/rides/{id}", h.HandleGetByID)

	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequireAuth)
		r.Post("/rides", h.HandleCreate)
		r.Get("/my-rides", h.HandleMyRides)
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
	ride, err := h.svc.Publish(r.Context(), claims.UserID, req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create ride")
		return
	}
	writeJSON(w, http.StatusCreated, ride)
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	pickup := r.URL.Query().Get("pickup")
	destination := r.URL.Query().Get("destination")
	dateStr := r.URL.Query().Get("date")
	if pickup == "" || destination == "" || dateStr == "" {
		writeError(w, http.StatusBadRequest, "Pickup, destination, and date are required")
		return
	}

	date, err := ParseDate(dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Date must be an RFC 3339 timestamp or YYYY-MM-DD")
		return
	}

	results, err := h.svc.Search(r.Context(), pickup, destination, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to search rides")
		return
	}
	if results == nil {
		results = []*models.RideWithDetails{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	ride, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Ride not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch ride")
		return
	}
	writeJSON(w, http.StatusOK, ride)
}

func (h *Handler) HandleMyRides(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetClaims(r.Context())
	rides, err := h.svc.ByDriver(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch user rides")
		return
	}
	writeJSON(w, http.StatusOK, rides)
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
