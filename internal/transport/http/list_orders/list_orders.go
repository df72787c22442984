package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ecomlabs/checkout/internal/service/models/order"
	"github.com/ecomlabs/checkout/internal/service/models/pagination"
	"github.com/ecomlabs/checkout/internal/transport/http/httperr"
	"github.com/ecomlabs/checkout/internal/transport/http/identity"
	"github.com/gorilla/schema"
)

type service interface {
	ListOrders(ctx context.Context, userID int64, page, pageSize int) (pagination.Page[order.Order], error)
}

type listOrdersRequest struct {
	Page     int `schema:"page,omitempty"`
	PageSize int `schema:"pageSize,omitempty"`
}

// ListOrders handles the order history request. Results are newest-first.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	userID, err := identity.UserID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		slog.Error("Error resolving user identity for list orders", "error", err)

		return
	}

	decoder := schema.NewDecoder()
	query := &listOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	page, err := service.ListOrders(r.Context(), userID, query.Page, query.PageSize)
	if err != nil {
		http.Error(w, err.Error(), httperr.Status(err))
		slog.Error("Error getting orders", "error", err, "user_id", userID)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(page); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}
