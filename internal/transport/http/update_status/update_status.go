package updatestatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ecomlabs/checkout/internal/service/models/order"
	"github.com/ecomlabs/checkout/internal/transport/http/httperr"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	UpdateOrderStatus(ctx context.Context, orderID int64, next order.Status) (order.Order, error)
}

// updateStatusRequest represents a status transition request from the
// fulfillment actor.
type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Validate validates the status transition request.
func (r *updateStatusRequest) Validate() error {
	return validator.New().Struct(r)
}

// UpdateStatus handles the status transition request.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil || orderID <= 0 {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		slog.Error("Error parsing order id for status update", "error", err)

		return
	}

	req := updateStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for status update", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for status update", "error", err)

		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing order status", "error", err)

		return
	}

	updated, err := service.UpdateOrderStatus(r.Context(), orderID, status)
	if err != nil {
		http.Error(w, err.Error(), httperr.Status(err))
		slog.Error("Error updating order status", "error", err, "order_id", orderID)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		slog.Error("Error sending response for status update", "error", err)
	}
}
