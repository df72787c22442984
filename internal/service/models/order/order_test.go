package order_test

import (
	"testing"

	"github.com/ecomlabs/checkout/internal/service/models/lineitem"
	"github.com/ecomlabs/checkout/internal/service/models/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    []lineitem.LineItem
		expected string
	}{
		{
			name:     "empty",
			items:    nil,
			expected: "0",
		},
		{
			name: "single item",
			items: []lineitem.LineItem{
				{Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			},
			expected: "20.00",
		},
		{
			name: "multiple items",
			items: []lineitem.LineItem{
				{Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
				{Quantity: 3, UnitPrice: decimal.RequireFromString("5.50")},
			},
			expected: "36.50",
		},
		{
			name: "rounding up",
			items: []lineitem.LineItem{
				{Quantity: 3, UnitPrice: decimal.RequireFromString("1.115")},
			},
			expected: "3.35",
		},
		{
			name: "rounding down",
			items: []lineitem.LineItem{
				{Quantity: 1, UnitPrice: decimal.RequireFromString("2.004")},
			},
			expected: "2.00",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			total := order.ComputeTotal(test.items)
			assert.True(t, total.Equal(decimal.RequireFromString(test.expected)),
				"expected %s, got %s", test.expected, total)
		})
	}
}

func TestInsufficientStockError_Message(t *testing.T) {
	err := &order.InsufficientStockError{
		ProductName: "Widget",
		Requested:   5,
		Available:   2,
	}

	assert.Equal(t, "Insufficient stock for Widget", err.Error())
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    order.Status
		to      order.Status
		allowed bool
	}{
		{order.StatusPending, order.StatusProcessing, true},
		{order.StatusPending, order.StatusCancelled, true},
		{order.StatusPending, order.StatusShipped, false},
		{order.StatusPending, order.StatusDelivered, false},
		{order.StatusProcessing, order.StatusShipped, true},
		{order.StatusProcessing, order.StatusCancelled, true},
		{order.StatusProcessing, order.StatusPending, false},
		{order.StatusShipped, order.StatusDelivered, true},
		{order.StatusShipped, order.StatusCancelled, false},
		{order.StatusDelivered, order.StatusPending, false},
		{order.StatusCancelled, order.StatusProcessing, false},
	}

	for _, test := range tests {
		t.Run(string(test.from)+"_to_"+string(test.to), func(t *testing.T) {
			assert.Equal(t, test.allowed, test.from.CanTransitionTo(test.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		status, err := order.ParseStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}

	_, err := order.ParseStatus("refunded")
	var validationErr *order.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
