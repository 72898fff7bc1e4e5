package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carpool-service/internal/auth"
	"carpool-service/internal/models"
	"carpool-service/internal/store"
)

// Handler exposes the admin dashboard endpoints.
type Handler struct {
	svc *Service
	mw  *auth.Middleware
}

func NewHandler(svc *Service, mw *auth.Middleware) *Handler {
	return &Handler{svc: svc, mw: mw}
}

// Routes registers the admin endpoints on the /api router.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(h.mw.RequireAdmin)
		r.Get("/pending-cars", h.HandlePendingCars)
		r.Get("/cars", h.HandleCars)
		r.Get("/users", h.HandleAdmins)
		r.Patch("/users/{id}/promote", h.HandlePromote)
	})
}

func (h *Handler) HandlePendingCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.svc.PendingCars(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch pending cars")
		return
	}
	if cars == nil {
		cars = []*models.Car{}
	}
	writeJSON(w, http.StatusOK, cars)
}

// HandleCars serves the dashboard car listing; today that is the pending
// queue, mirroring the review workflow.
func (h *Handler) HandleCars(w http.ResponseWriter, r *http.Request) {
	h.HandlePendingCars(w, r)
}

func (h *Handler) HandleAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.svc.Admins(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch admins")
		return
	}
	if admins == nil {
		admins = []*models.User{}
	}
	writeJSON(w, http.StatusOK, admins)
}

func (h *Handler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Promote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to promote user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User promoted to admin successfully",
		"user": map[string]string{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
