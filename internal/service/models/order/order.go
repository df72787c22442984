package order

import (
	"time"

	"github.com/ecomlabs/checkout/internal/service/models/currency"
	"github.com/ecomlabs/checkout/internal/service/models/lineitem"
	"github.com/shopspring/decimal"
)

// Order represents a confirmed purchase.
type Order struct {
	ID         int64               `json:"id"`
	UserID     int64               `json:"userId"`
	Status     Status              `json:"status"`
	TotalPrice decimal.Decimal     `json:"totalPrice"`
	Currency   currency.Currency   `json:"currency"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
	LineItems  []lineitem.LineItem `json:"lineItems"`
}

// RequestedItem is one position of a checkout request. Duplicate product ids
// are kept as separate line items and reserved independently.
type RequestedItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// ComputeTotal sums quantity * unitPriceAtPurchase over the given line items,
// rounded to 2 decimal places.
func ComputeTotal(items []lineitem.LineItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Subtotal())
	}

	return total.Round(2)
}
