package ilineitemrepo

import (
	"context"

	"github.com/ecomlabs/checkout/internal/service/models/lineitem"
)

// ILineItemRepository is an interface for the line item postgres repository.
type ILineItemRepository interface {
	// BulkInsert persists the line items of one order in input order and
	// returns them with generated ids.
	BulkInsert(ctx context.Context, items []lineitem.LineItem) ([]lineitem.LineItem, error)

	// Query retrieves line items matching the filter.
	Query(ctx context.Context, filter *lineitem.QueryLineItemsModel) ([]lineitem.LineItem, error)
}
