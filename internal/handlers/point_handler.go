package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pointpay/backend/internal/models"
	"github.com/pointpay/backend/internal/services"
)

type PointHandler struct {
	service   *services.PointService
	validator *services.ValidationHelper
}

func NewPointHandler(service *services.PointService) *PointHandler {
	return &PointHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// GetPoint returns the current balance for a user
// @Summary Get point balance
// @Description Get the current point balance for a user
// @Tags points
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserPoint
// @Failure 400 {object} services.ErrorResponse
// @Router /point/{id} [get]
func (h *PointHandler) GetPoint(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	balance, err := h.service.GetBalance(r.Context(), userID)
	if err != nil {
		log.Printf("[POINT] balance lookup failed for user %d: %v", userID, err)
		services.SendErrorResponse(w, "Failed to read balance", http.StatusInternalServerError, nil)
		return
	}

	h.writeUserPoint(w, userID, balance)
}

// GetHistories returns the charge/use history for a user
// @Summary Get point histories
// @Description Get all charge and use records for a user in insertion order
// @Tags points
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.PointHistory
// @Failure 400 {object} services.ErrorResponse
// @Router /point/{id}/histories [get]
func (h *PointHandler) GetHistories(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	histories, err := h.service.GetHistory(r.Context(), userID)
	if err != nil {
		log.Printf("[POINT] history lookup failed for user %d: %v", userID, err)
		services.SendErrorResponse(w, "Failed to read histories", http.StatusInternalServerError, nil)
		return
	}
	if histories == nil {
		histories = []models.PointHistory{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(histories)
}

// Charge adds points to a user's balance
// @Summary Charge points
// @Description Increase a user's balance by the given amount, bounded by the configured maximum
// @Tags points
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body models.PointRequest true "Charge amount"
// @Success 200 {object} models.UserPoint
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /point/{id}/charge [patch]
func (h *PointHandler) Charge(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.service.Charge)
}

// Use spends points from a user's balance
// @Summary Use points
// @Description Decrease a user's balance by the given amount, bounded below by zero
// @Tags points
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body models.PointRequest true "Use amount"
// @Success 200 {object} models.UserPoint
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /point/{id}/use [patch]
func (h *PointHandler) Use(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.service.Use)
}

func (h *PointHandler) mutate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, amount, timeMillis int64) (int64, error)) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.PointRequest

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	balance, err := op(r.Context(), userID, req.Amount, time.Now().UnixMilli())
	if err != nil {
		h.writeOpError(w, userID, err)
		return
	}

	h.writeUserPoint(w, userID, balance)
}

func (h *PointHandler) writeOpError(w http.ResponseWriter, userID int64, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
	case errors.Is(err, services.ErrLimitExceeded), errors.Is(err, services.ErrInsufficientFunds):
		services.SendErrorResponse(w, err.Error(), http.StatusConflict, nil)
	default:
		log.Printf("[POINT] operation failed for user %d: %v", userID, err)
		services.SendErrorResponse(w, "Failed to process operation", http.StatusInternalServerError, nil)
	}
}

func (h *PointHandler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		services.SendErrorResponse(w, "Invalid user id", http.StatusBadRequest, nil)
		return 0, false
	}
	return userID, true
}

func (h *PointHandler) writeUserPoint(w http.ResponseWriter, userID, balance int64) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.UserPoint{
		UserID:       userID,
		Point:        balance,
		UpdateMillis: time.Now().UnixMilli(),
	})
}
