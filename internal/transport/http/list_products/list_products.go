package listproducts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ecomlabs/checkout/internal/service/models/pagination"
	"github.com/ecomlabs/checkout/internal/service/models/product"
	"github.com/ecomlabs/checkout/internal/transport/http/httperr"
	"github.com/gorilla/schema"
)

type service interface {
	ListProducts(ctx context.Context, page, pageSize int) (pagination.Page[product.Product], error)
}

type listProductsRequest struct {
	Page     int `schema:"page,omitempty"`
	PageSize int `schema:"pageSize,omitempty"`
}

// ListProducts handles the catalog listing request.
func ListProducts(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &listProductsRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	page, err := service.ListProducts(r.Context(), query.Page, query.PageSize)
	if err != nil {
		http.Error(w, err.Error(), httperr.Status(err))
		slog.Error("Error getting products", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(page); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}
