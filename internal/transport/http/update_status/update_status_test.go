package updatestatus_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecomlabs/checkout/internal/service/models/order"
	updatestatus "github.com/ecomlabs/checkout/internal/transport/http/update_status"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	updated order.Order
	err     error

	gotOrderID int64
	gotStatus  order.Status
}

func (s *fakeService) UpdateOrderStatus(
	ctx context.Context,
	orderID int64,
	next order.Status,
) (order.Order, error) {
	s.gotOrderID = orderID
	s.gotStatus = next

	return s.updated, s.err
}

func doRequest(t *testing.T, svc *fakeService, orderID, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	router.Patch("/api/orders/{orderID}/status", func(w http.ResponseWriter, r *http.Request) {
		updatestatus.UpdateStatus(w, r, svc)
	})

	r := httptest.NewRequest(http.MethodPatch, "/api/orders/"+orderID+"/status", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	return w
}

func TestUpdateStatus(t *testing.T) {
	svc := &fakeService{
		updated: order.Order{ID: 5, Status: order.StatusProcessing},
	}

	w := doRequest(t, svc, "5", `{"status":"processing"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), svc.gotOrderID)
	assert.Equal(t, order.StatusProcessing, svc.gotStatus)
}

func TestUpdateStatus_BadRequest(t *testing.T) {
	tests := []struct {
		name    string
		orderID string
		body    string
	}{
		{"bad order id", "abc", `{"status":"processing"}`},
		{"missing status", "5", `{}`},
		{"unknown status", "5", `{"status":"refunded"}`},
		{"malformed body", "5", `{"status":`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := doRequest(t, &fakeService{}, test.orderID, test.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	svc := &fakeService{
		err: &order.InvalidTransitionError{From: order.StatusPending, To: order.StatusDelivered},
	}

	w := doRequest(t, svc, "5", `{"status":"delivered"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := &fakeService{err: order.ErrOrderNotFound}

	w := doRequest(t, svc, "999", `{"status":"processing"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
