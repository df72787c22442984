package lineitem

import (
	"time"

	"github.com/ecomlabs/checkout/internal/service/models/currency"
	"github.com/shopspring/decimal"
)

// LineItem represents one purchased position within an order.
// ProductTitle and UnitPrice are captured at checkout time and are never
// recomputed from the current catalog state.
type LineItem struct {
	ID           int64             `json:"id"`
	OrderID      int64             `json:"orderId"`
	ProductID    int64             `json:"productId"`
	Quantity     int               `json:"quantity"`
	ProductTitle string            `json:"productTitle"`
	UnitPrice    decimal.Decimal   `json:"unitPriceAtPurchase"`
	Currency     currency.Currency `json:"currency"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// Subtotal returns Quantity * UnitPrice without rounding.
func (li *LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
