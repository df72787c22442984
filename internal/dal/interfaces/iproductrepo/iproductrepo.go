package iproductrepo

import (
	"context"

	"github.com/ecomlabs/checkout/internal/service/models/product"
)

// IProductRepository is an interface for the product postgres repository.
type IProductRepository interface {
	// GetForUpdate loads one product and locks its row for the duration of
	// the surrounding transaction, so that read-then-decrement of stock is
	// linearizable per product.
	GetForUpdate(ctx context.Context, id int64) (product.Product, error)

	// DecrementStock performs a conditional decrement: it succeeds only
	// while stock >= quantity. Returns the number of affected rows.
	DecrementStock(ctx context.Context, id int64, quantity int) (int64, error)

	// Query retrieves products matching the filter.
	Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)

	// Count returns the total number of products matching the filter,
	// ignoring limit and offset.
	Count(ctx context.Context, filter *product.QueryProductsModel) (int64, error)
}
