package placeorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ecomlabs/checkout/internal/service/models/order"
	"github.com/ecomlabs/checkout/internal/transport/http/httperr"
	"github.com/ecomlabs/checkout/internal/transport/http/identity"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, userID int64, items []order.RequestedItem) (order.Order, error)
}

// itemInPlaceOrderRequest represents an item in a checkout request.
type itemInPlaceOrderRequest struct {
	ProductID int64 `json:"productId" validate:"gt=0"`
	Quantity  int   `json:"quantity"  validate:"gt=0"`
}

// placeOrderRequest represents a checkout request.
type placeOrderRequest struct {
	Items []itemInPlaceOrderRequest `json:"items" validate:"required,min=1,dive"`
}

// Validate validates the checkout request.
func (r *placeOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *placeOrderRequest) toModel() []order.RequestedItem {
	items := make([]order.RequestedItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = order.RequestedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	return items
}

// PlaceOrder handles the checkout request.
func PlaceOrder(w http.ResponseWriter, r *http.Request, service service) {
	userID, err := identity.UserID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		slog.Error("Error resolving user identity for place order", "error", err)

		return
	}

	req := placeOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for place order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for place order", "error", err)

		return
	}

	placed, err := service.PlaceOrder(r.Context(), userID, req.toModel())
	if err != nil {
		http.Error(w, err.Error(), httperr.Status(err))
		slog.Error("Error placing order", "error", err, "user_id", userID)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(placed); err != nil {
		slog.Error("Error sending response for place order", "error", err)
	}
}
