package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/marcelokanu/gostock-orders/internal/entity"
	"github.com/marcelokanu/gostock-orders/internal/usecase"
)

type stubCustomers struct{ customers map[string]*domain.Customer }

func (s *stubCustomers) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	return s.customers[id], nil
}

type stubCatalog struct {
	mu      sync.Mutex
	entries map[string]*domain.CatalogEntry
}

func (s *stubCatalog) FindAllByID(_ context.Context, ids []string) ([]domain.CatalogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.CatalogEntry
	for _, id := range ids {
		if e, ok := s.entries[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *stubCatalog) Restock(_ context.Context, id string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id].StockQuantity += qty
	return nil
}

func (s *stubCatalog) UpdatePrice(_ context.Context, id string, priceCents int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id].UnitPriceCents = priceCents
	return nil
}

type stubOrders struct {
	catalog *stubCatalog
	created map[string]*domain.Order
}

func (s *stubOrders) Create(_ context.Context, o *domain.Order, deltas []domain.StockDelta) error {
	s.catalog.mu.Lock()
	defer s.catalog.mu.Unlock()
	for _, d := range deltas {
		e, ok := s.catalog.entries[d.ProductID]
		if !ok || e.StockQuantity < d.Ordered {
			avail := 0
			if ok {
				avail = e.StockQuantity
			}
			return &domain.StockError{ProductID: d.ProductID, Available: avail}
		}
	}
	for _, d := range deltas {
		s.catalog.entries[d.ProductID].StockQuantity -= d.Ordered
	}
	s.created[o.ID] = o
	return nil
}

func (s *stubOrders) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if o, ok := s.created[id]; ok {
		return o, nil
	}
	return nil, domain.ErrOrderNotFound
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubCatalog, *stubOrders) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	customers := &stubCustomers{customers: map[string]*domain.Customer{
		"c1": {ID: "c1", Name: "Alice"},
	}}
	catalog := &stubCatalog{entries: map[string]*domain.CatalogEntry{
		"P1": {ID: "P1", Name: "Keyboard", UnitPriceCents: 500, StockQuantity: 10},
	}}
	orders := &stubOrders{catalog: catalog, created: map[string]*domain.Order{}}

	place := usecase.NewPlaceOrder(customers, catalog, orders, nil)
	oh := NewOrderHandler(place, orders, nil)
	ph := NewProductHandler(catalog)
	return NewRouter(oh, ph), catalog, orders
}

func postOrder(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlaceOrderEndpoint_Created(t *testing.T) {
	r, catalog, _ := newTestRouter(t)

	w := postOrder(r, `{"customerId":"c1","items":[{"productId":"P1","quantity":3}]}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		OrderID    string `json:"orderId"`
		TotalCents int64  `json:"totalCents"`
		Items      []struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, int64(1500), resp.TotalCents)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	assert.Equal(t, 7, catalog.entries["P1"].StockQuantity)
}

func TestPlaceOrderEndpoint_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantReason string
	}{
		{
			name:       "invalid quantity",
			body:       `{"customerId":"c1","items":[{"productId":"P1","quantity":0}]}`,
			wantStatus: http.StatusBadRequest,
			wantReason: "invalid_quantity",
		},
		{
			name:       "unknown customer",
			body:       `{"customerId":"nobody","items":[{"productId":"P1","quantity":1}]}`,
			wantStatus: http.StatusNotFound,
			wantReason: "customer_not_found",
		},
		{
			name:       "unknown product",
			body:       `{"customerId":"c1","items":[{"productId":"ghost","quantity":1}]}`,
			wantStatus: http.StatusNotFound,
			wantReason: "product_not_found",
		},
		{
			name:       "insufficient stock",
			body:       `{"customerId":"c1","items":[{"productId":"P1","quantity":11}]}`,
			wantStatus: http.StatusConflict,
			wantReason: "insufficient_stock",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, catalog, orders := newTestRouter(t)

			w := postOrder(r, tc.body)

			assert.Equal(t, tc.wantStatus, w.Code)
			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantReason, resp["error"])
			// no side effects on any failure
			assert.Equal(t, 10, catalog.entries["P1"].StockQuantity)
			assert.Empty(t, orders.created)
		})
	}
}

// A valid order whose JSON body exceeds the request-log cap must still bind
// and commit: the logging middleware only caps its own copy of the body.
func TestPlaceOrderEndpoint_BodyLargerThanLogCap(t *testing.T) {
	r, catalog, orders := newTestRouter(t)

	body := `{"customerId":"c1","note":"` + strings.Repeat("x", 8*1024) +
		`","items":[{"productId":"P1","quantity":3}]}`

	w := postOrder(r, body)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 7, catalog.entries["P1"].StockQuantity)
	assert.Len(t, orders.created, 1)
}

func TestPlaceOrderEndpoint_MalformedBody(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := postOrder(r, `{"items":[]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderEndpoint(t *testing.T) {
	r, _, orders := newTestRouter(t)

	w := postOrder(r, `{"customerId":"c1","items":[{"productId":"P1","quantity":2}]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var placed struct {
		OrderID string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	require.Contains(t, orders.created, placed.OrderID)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders/"+placed.OrderID, nil)
	got := httptest.NewRecorder()
	r.ServeHTTP(got, req)

	require.Equal(t, http.StatusOK, got.Code)
	var resp struct {
		OrderID    string `json:"orderId"`
		CustomerID string `json:"customerId"`
	}
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &resp))
	assert.Equal(t, placed.OrderID, resp.OrderID)
	assert.Equal(t, "c1", resp.CustomerID)
}

type failingCache struct{ err error }

func (f *failingCache) SetOrder(context.Context, *domain.Order) error { return f.err }

func (f *failingCache) GetOrder(context.Context, string) (*domain.Order, bool, error) {
	return nil, false, f.err
}

// A broken cache must not break reads; the handler falls through to the store.
func TestGetOrderEndpoint_CacheErrorFallsThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	customers := &stubCustomers{customers: map[string]*domain.Customer{
		"c1": {ID: "c1", Name: "Alice"},
	}}
	catalog := &stubCatalog{entries: map[string]*domain.CatalogEntry{
		"P1": {ID: "P1", Name: "Keyboard", UnitPriceCents: 500, StockQuantity: 10},
	}}
	orders := &stubOrders{catalog: catalog, created: map[string]*domain.Order{}}

	place := usecase.NewPlaceOrder(customers, catalog, orders, nil)
	oh := NewOrderHandler(place, orders, &failingCache{err: errors.New("connection refused")})
	r := NewRouter(oh, NewProductHandler(catalog))

	w := postOrder(r, `{"customerId":"c1","items":[{"productId":"P1","quantity":2}]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var placed struct {
		OrderID string `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))

	req := httptest.NewRequest(http.MethodGet, "/v1/orders/"+placed.OrderID, nil)
	got := httptest.NewRecorder()
	r.ServeHTTP(got, req)

	assert.Equal(t, http.StatusOK, got.Code)
}

func TestGetOrderEndpoint_NotFound(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/orders/does-not-exist", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProductStockEndpoint(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/products/P1/stock", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ProductID     string `json:"productId"`
		StockQuantity int    `json:"stockQuantity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "P1", resp.ProductID)
	assert.Equal(t, 10, resp.StockQuantity)

	req = httptest.NewRequest(http.MethodGet, "/v1/products/ghost/stock", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
