package cars

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carpool-service/internal/auth"
	"carpool-service/internal/store"
	"carpool-service/pkg/validation"
)

// Handler exposes car HTTP endpoints.
type Handler struct {
	svc *Service
	mw  *auth.Middleware
}

func NewHandler(svc *Service, mw *auth.Middleware) *Handler {
	return &Handler{svc: svc, mw: mw}
}

// Routes registers the car endpoints on the /api router.
func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.mw.RequireAuth)
		r.Get("/cars", h.HandleList)
		r.Post("/cars", h.HandleCreate)
	})

	r.With(h.mw.RequireAdmin).Patch("/cars/{id}/verify", h.HandleVerify)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetClaims(r.Context())
	cars, err := h.svc.ListByOwner(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch cars")
		return
	}
	writeJSON(w, http.StatusOK, cars)
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
	car, err := h.svc.Register(r.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, "Registration number already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create car")
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	car, err := h.svc.Verify(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "Status must be approved or rejected")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Car not found")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to update car verification")
		}
		return
	}
	writeJSON(w, http.StatusOK, car)
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
