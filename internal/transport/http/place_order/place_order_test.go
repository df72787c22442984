package placeorder_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ecomlabs/checkout/internal/service/models/lineitem"
	"github.com/ecomlabs/checkout/internal/service/models/order"
	"github.com/ecomlabs/checkout/internal/transport/http/identity"
	placeorder "github.com/ecomlabs/checkout/internal/transport/http/place_order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	placed order.Order
	err    error

	gotUserID int64
	gotItems  []order.RequestedItem
}

func (s *fakeService) PlaceOrder(
	ctx context.Context,
	userID int64,
	items []order.RequestedItem,
) (order.Order, error) {
	s.gotUserID = userID
	s.gotItems = items

	return s.placed, s.err
}

func doRequest(t *testing.T, svc *fakeService, userID string, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	if userID != "" {
		r.Header.Set(identity.UserIDHeader, userID)
	}
	w := httptest.NewRecorder()

	placeorder.PlaceOrder(w, r, svc)

	return w
}

func TestPlaceOrder_Created(t *testing.T) {
	title := gofakeit.ProductName()
	svc := &fakeService{
		placed: order.Order{
			ID:         10,
			UserID:     1,
			Status:     order.StatusPending,
			TotalPrice: decimal.RequireFromString("20.00"),
			LineItems: []lineitem.LineItem{
				{ProductID: 1, Quantity: 2, ProductTitle: title},
			},
		},
	}

	w := doRequest(t, svc, "1", `{"items":[{"productId":1,"quantity":2}]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), svc.gotUserID)
	require.Len(t, svc.gotItems, 1)
	assert.Equal(t, order.RequestedItem{ProductID: 1, Quantity: 2}, svc.gotItems[0])

	var resp order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, order.StatusPending, resp.Status)
	assert.Equal(t, title, resp.LineItems[0].ProductTitle)
}

func TestPlaceOrder_MissingIdentity(t *testing.T) {
	w := doRequest(t, &fakeService{}, "", `{"items":[{"productId":1,"quantity":2}]}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlaceOrder_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"items":`},
		{"empty items", `{"items":[]}`},
		{"missing items", `{}`},
		{"zero quantity", `{"items":[{"productId":1,"quantity":0}]}`},
		{"negative product id", `{"items":[{"productId":-1,"quantity":1}]}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := doRequest(t, &fakeService{}, "1", test.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	svc := &fakeService{
		err: &order.InsufficientStockError{ProductName: "Widget", Requested: 5, Available: 2},
	}

	w := doRequest(t, svc, "1", `{"items":[{"productId":1,"quantity":5}]}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Insufficient stock for Widget", strings.TrimSpace(w.Body.String()))
}

func TestPlaceOrder_ProductNotFound(t *testing.T) {
	svc := &fakeService{
		err: &order.ProductNotFoundError{ProductID: 42},
	}

	w := doRequest(t, svc, "1", `{"items":[{"productId":42,"quantity":1}]}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
