package iorderrepo

import (
	"context"
	"time"

	"github.com/ecomlabs/checkout/internal/service/models/order"
)

// IOrderRepository is an interface for the order postgres repository.
type IOrderRepository interface {
	// Insert persists a new order and returns it with the generated id.
	Insert(ctx context.Context, o order.Order) (order.Order, error)

	// Query retrieves orders matching the filter, newest first.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	// Count returns the total number of orders matching the filter,
	// ignoring limit and offset.
	Count(ctx context.Context, filter *order.QueryOrdersModel) (int64, error)

	// GetForUpdate loads one order and locks its row for the duration of
	// the surrounding transaction.
	GetForUpdate(ctx context.Context, id int64) (order.Order, error)

	// UpdateStatus persists a status transition.
	UpdateStatus(ctx context.Context, id int64, status order.Status, updatedAt time.Time) error
}
