package product

import (
	"time"

	"github.com/ecomlabs/checkout/internal/service/models/currency"
	"github.com/shopspring/decimal"
)

// Product is the catalog view the checkout flow depends on. Stock is the only
// shared mutable field; it is decremented exclusively by order placement.
type Product struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Price     decimal.Decimal   `json:"price"`
	Currency  currency.Currency `json:"currency"`
	Stock     int               `json:"stock"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// QueryProductsModel represents filter parameters for querying products.
type QueryProductsModel struct {
	Ids    []int64 `json:"ids,omitempty"`
	Limit  int     `json:"limit,omitempty"`
	Offset int     `json:"offset,omitempty"`
}
