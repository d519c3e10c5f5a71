package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"futstore-be/internal/order"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Checkout(ctx context.Context, input order.CheckoutInput) (*order.CheckoutResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.CheckoutResult), args.Error(1)
}

func (m *MockOrderService) GetByReference(ctx context.Context, reference string) (*order.Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) SetStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, opts order.ListOptions) (*order.ListResult, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ListResult), args.Error(1)
}

func (m *MockOrderService) ReconcileStale(ctx context.Context, olderThan time.Duration) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}

func newOrderRouter(svc order.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewOrderHandler(svc)

	r := gin.New()
	r.POST("/api/checkout", h.Checkout)
	r.GET("/api/orders/:reference", h.Get)
	r.PUT("/api/admin/orders/:id/status", h.UpdateStatus)
	r.POST("/api/admin/orders/reconcile", h.Reconcile)
	return r
}

func TestOrderHandler_Checkout(t *testing.T) {
	body := `{"customer":{"name":"Ana Lopez","email":"ana@example.com"},"items":[{"name":"Jersey","size":"M","quantity":2,"price":10000}],"total":20000}`

	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Checkout", mock.Anything, mock.MatchedBy(func(input order.CheckoutInput) bool {
			return input.IdempotencyKey == "key-1" && len(input.Items) == 1
		})).Return(&order.CheckoutResult{
			Order:       &order.Order{Reference: "ORD-1724500000000", Status: order.StatusPending},
			RedirectURL: "https://gateway.test/pay/1",
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/checkout", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "key-1")
		newOrderRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ORD-1724500000000", resp["orderId"])
		assert.Equal(t, "https://gateway.test/pay/1", resp["redirectUrl"])
	})

	t.Run("EmptyCartIsClientError", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Checkout", mock.Anything, mock.Anything).Return(nil, order.ErrEmptyCart)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/checkout", bytes.NewBufferString(`{"items":[]}`))
		req.Header.Set("Content-Type", "application/json")
		newOrderRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("InvalidCartIsClientError", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Checkout", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: item \"Jersey\" has no product reference", order.ErrInvalidCart))

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/checkout", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		newOrderRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "product reference")
	})

	t.Run("GatewayFailureIsGeneric", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Checkout", mock.Anything, mock.Anything).
			Return(nil, errors.New("gateway error: upstream down"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/checkout", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		newOrderRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "checkout failed")
		assert.NotContains(t, w.Body.String(), "upstream down")
	})
}

func TestOrderHandler_Get(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("GetByReference", mock.Anything, "ORD-0").Return(nil, order.ErrOrderNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/orders/ORD-0", nil)
		newOrderRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("SetStatus", mock.Anything, "o1", order.StatusPaid).
			Return(&order.Order{ID: "o1", Status: order.StatusPaid}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/api/admin/orders/o1/status", bytes.NewBufferString(`{"status":"paid"}`))
		req.Header.Set("Content-Type", "application/json")
		newOrderRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"paid"`)
	})

	t.Run("IllegalTransition", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("SetStatus", mock.Anything, "o1", order.StatusPaid).
			Return(nil, order.ErrIllegalTransition)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/api/admin/orders/o1/status", bytes.NewBufferString(`{"status":"paid"}`))
		req.Header.Set("Content-Type", "application/json")
		newOrderRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("SetStatus", mock.Anything, "missing", order.StatusPaid).
			Return(nil, order.ErrOrderNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/api/admin/orders/missing/status", bytes.NewBufferString(`{"status":"paid"}`))
		req.Header.Set("Content-Type", "application/json")
		newOrderRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderHandler_Reconcile(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("ReconcileStale", mock.Anything, staleAfter).Return(3, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/admin/orders/reconcile", nil)
	newOrderRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cancelled":3`)
}
