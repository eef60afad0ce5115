package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/subhub/order-service/internal/kafka"
	httpadapter "github.com/subhub/order-service/internal/orders/adapters/http"
	"github.com/subhub/order-service/internal/orders/adapters/memory"
	"github.com/subhub/order-service/internal/orders/app"
	"github.com/subhub/order-service/internal/orders/domain"
	ordersmetrics "github.com/subhub/order-service/internal/orders/metrics"
	"github.com/subhub/order-service/internal/orders/ports"
	"github.com/subhub/order-service/internal/productcatalog"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

type failingCatalog struct{}

func (failingCatalog) Resolve(_ context.Context, _ string) (*ports.Product, error) {
	return nil, ports.ErrCatalogUnavailable
}

type failingRepository struct{}

func (failingRepository) Insert(context.Context, ports.NewOrder) (*domain.Order, error) {
	return nil, errors.New("connection refused")
}

func (failingRepository) GetByID(context.Context, int64) (*domain.Order, error) {
	return nil, errors.New("connection refused")
}

func (failingRepository) List(context.Context, ports.ListFilter) ([]domain.Order, error) {
	return nil, errors.New("connection refused")
}

func (failingRepository) UpdateStatus(context.Context, int64, domain.OrderStatus) (*domain.Order, error) {
	return nil, errors.New("connection refused")
}

func (failingRepository) Delete(context.Context, int64) (*domain.Order, error) {
	return nil, errors.New("connection refused")
}

func (failingRepository) Count(context.Context) (int64, error) {
	return 0, errors.New("connection refused")
}

func newTestMux(t *testing.T, repo ports.OrderRepository, catalog ports.ProductCatalog) *http.ServeMux {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	meter := sdkmetric.NewMeterProvider().Meter("test")
	m, err := ordersmetrics.NewMetrics(meter)
	if err != nil {
		t.Fatalf("create metrics: %v", err)
	}

	service := app.NewService(repo, catalog, kafka.NewNoopEventBus(), logger, m)
	handler := httpadapter.NewHandler(service)

	mux := http.NewServeMux()
	handler.Register(mux)
	return mux
}

func testCatalog() *productcatalog.StaticCatalog {
	month := 10.0
	year := 99.0
	return productcatalog.NewStaticCatalog(map[string]ports.Product{
		"P1":    {ID: "P1", PublicationName: "The Daily Gopher", PricePerMonth: &month, PricePerYear: &year},
		"PY":    {ID: "PY", PublicationName: "The Annual Review", PricePerYear: &year},
		"PFREE": {ID: "PFREE", PublicationName: "Free Gazette"},
	})
}

func doRequest(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeOrder(t *testing.T, rec *httptest.ResponseRecorder) domain.Order {
	t.Helper()
	var order domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order from %q: %v", rec.Body.String(), err)
	}
	return order
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error from %q: %v", rec.Body.String(), err)
	}
	return payload.Error
}

func TestCreateOrderEndpoint(t *testing.T) {
	t.Run("creates order with monthly price and quantity", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())

		rec := doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"P1","quantity":3}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		order := decodeOrder(t, rec)
		if order.TotalPrice != 30.00 {
			t.Errorf("expected total_price 30.00, got %v", order.TotalPrice)
		}
		if order.Status != domain.StatusPending {
			t.Errorf("expected status pending, got %s", order.Status)
		}
		if order.ID == 0 {
			t.Error("expected store-assigned id")
		}
		if strings.Contains(rec.Body.String(), "publication_name") {
			t.Error("expected no publication_name on write response")
		}
	})

	t.Run("quantity defaults to 1 when omitted", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())

		rec := doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"P1"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}

		order := decodeOrder(t, rec)
		if order.Quantity != 1 {
			t.Errorf("expected quantity 1, got %d", order.Quantity)
		}
		if order.TotalPrice != 10.00 {
			t.Errorf("expected total_price 10.00, got %v", order.TotalPrice)
		}
	})

	t.Run("falls back to yearly price", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())

		rec := doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"PY"}`)

		order := decodeOrder(t, rec)
		if order.TotalPrice != 99.00 {
			t.Errorf("expected total_price 99.00, got %v", order.TotalPrice)
		}
	})

	t.Run("accepts zero-priced order when product has no prices", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())

		rec := doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"PFREE","quantity":2}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		order := decodeOrder(t, rec)
		if order.TotalPrice != 0 {
			t.Errorf("expected total_price 0, got %v", order.TotalPrice)
		}
	})

	t.Run("rejects missing product id", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())

		rec := doRequest(mux, http.MethodPost, "/api/orders", `{"quantity":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); msg != "Product ID is required" {
			t.Errorf("expected %q, got %q", "Product ID is required", msg)
		}
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())

		rec := doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"P1","quantity":-2}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown product is a client error", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())

		rec := doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"P404"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); msg != "Product not found" {
			t.Errorf("expected %q, got %q", "Product not found", msg)
		}
	})

	t.Run("catalog outage is a server error", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), failingCatalog{})

		rec := doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"P1"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); msg != "Failed to validate product" {
			t.Errorf("expected %q, got %q", "Failed to validate product", msg)
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())

		rec := doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGetOrderEndpoint(t *testing.T) {
	t.Run("returns order enriched with publication name", func(t *testing.T) {
		repo := memory.NewRepository()
		repo.SetProductName("P1", "The Daily Gopher")
		mux := newTestMux(t, repo, testCatalog())

		created := decodeOrder(t, doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"P1"}`))

		rec := doRequest(mux, http.MethodGet, "/api/orders/1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		order := decodeOrder(t, rec)
		if order.ID != created.ID {
			t.Errorf("expected id %d, got %d", created.ID, order.ID)
		}
		if order.PublicationName != "The Daily Gopher" {
			t.Errorf("expected publication name, got %q", order.PublicationName)
		}
	})

	t.Run("missing order is 404", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())

		rec := doRequest(mux, http.MethodGet, "/api/orders/99", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); msg != "Order not found" {
			t.Errorf("expected %q, got %q", "Order not found", msg)
		}
	})

	t.Run("non-numeric id is 404", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())

		rec := doRequest(mux, http.MethodGet, "/api/orders/abc", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("store failure is 500", func(t *testing.T) {
		mux := newTestMux(t, failingRepository{}, testCatalog())

		rec := doRequest(mux, http.MethodGet, "/api/orders/1", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestListOrdersEndpoint(t *testing.T) {
	t.Run("empty store lists as empty array", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())

		rec := doRequest(mux, http.MethodGet, "/api/orders", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Errorf("expected empty array, got %q", got)
		}
	})

	t.Run("lists newest first", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())

		doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"P1"}`)
		doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"PY"}`)

		rec := doRequest(mux, http.MethodGet, "/api/orders", "")

		var orders []domain.Order
		if err := json.Unmarshal(rec.Body.Bytes(), &orders); err != nil {
			t.Fatalf("decode orders: %v", err)
		}
		if len(orders) != 2 {
			t.Fatalf("expected 2 orders, got %d", len(orders))
		}
		if orders[0].ID <= orders[1].ID {
			t.Errorf("expected newest first, got ids %d, %d", orders[0].ID, orders[1].ID)
		}
	})

	t.Run("store failure is 500", func(t *testing.T) {
		mux := newTestMux(t, failingRepository{}, testCatalog())

		rec := doRequest(mux, http.MethodGet, "/api/orders", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestUpdateStatusEndpoint(t *testing.T) {
	t.Run("assigns any valid status", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())
		doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"P1"}`)

		for _, status := range []string{"confirmed", "completed", "cancelled", "pending"} {
			rec := doRequest(mux, http.MethodPut, "/api/orders/1/status", `{"status":"`+status+`"}`)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200 for %s, got %d", status, rec.Code)
			}
			order := decodeOrder(t, rec)
			if string(order.Status) != status {
				t.Errorf("expected status %s, got %s", status, order.Status)
			}
		}
	})

	t.Run("rejects unknown status and leaves order unchanged", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())
		doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"P1"}`)

		rec := doRequest(mux, http.MethodPut, "/api/orders/1/status", `{"status":"done"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); msg != "Invalid status" {
			t.Errorf("expected %q, got %q", "Invalid status", msg)
		}

		order := decodeOrder(t, doRequest(mux, http.MethodGet, "/api/orders/1", ""))
		if order.Status != domain.StatusPending {
			t.Errorf("expected status unchanged (pending), got %s", order.Status)
		}
	})

	t.Run("missing order is 404", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())

		rec := doRequest(mux, http.MethodPut, "/api/orders/7/status", `{"status":"confirmed"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestListOrdersByStatusEndpoint(t *testing.T) {
	t.Run("returns exactly the matching subset in list order", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())

		doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"P1"}`)
		doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"PY"}`)
		doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"P1"}`)
		doRequest(mux, http.MethodPut, "/api/orders/2/status", `{"status":"confirmed"}`)

		var all, pending []domain.Order
		if err := json.Unmarshal(doRequest(mux, http.MethodGet, "/api/orders", "").Body.Bytes(), &all); err != nil {
			t.Fatalf("decode all orders: %v", err)
		}
		if err := json.Unmarshal(doRequest(mux, http.MethodGet, "/api/orders/status/pending", "").Body.Bytes(), &pending); err != nil {
			t.Fatalf("decode pending orders: %v", err)
		}

		var want []int64
		for _, order := range all {
			if order.Status == domain.StatusPending {
				want = append(want, order.ID)
			}
		}

		if len(pending) != len(want) {
			t.Fatalf("expected %d pending orders, got %d", len(want), len(pending))
		}
		for i, order := range pending {
			if order.ID != want[i] {
				t.Errorf("position %d: expected id %d, got %d", i, want[i], order.ID)
			}
		}
	})

	t.Run("unknown status yields empty array, not an error", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())
		doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"P1"}`)

		rec := doRequest(mux, http.MethodGet, "/api/orders/status/bogus", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Errorf("expected empty array, got %q", got)
		}
	})
}

func TestDeleteOrderEndpoint(t *testing.T) {
	t.Run("deletes and returns last-known state", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())
		created := decodeOrder(t, doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"P1","quantity":2}`))

		rec := doRequest(mux, http.MethodDelete, "/api/orders/1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var payload struct {
			Message string       `json:"message"`
			Order   domain.Order `json:"order"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode delete response: %v", err)
		}
		if payload.Message != "Order deleted successfully" {
			t.Errorf("expected delete message, got %q", payload.Message)
		}
		if payload.Order.ID != created.ID {
			t.Errorf("expected order id %d, got %d", created.ID, payload.Order.ID)
		}

		if rec := doRequest(mux, http.MethodGet, "/api/orders/1", ""); rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 after delete, got %d", rec.Code)
		}
	})

	t.Run("missing order is 404", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())

		rec := doRequest(mux, http.MethodDelete, "/api/orders/99", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestTestDBEndpoint(t *testing.T) {
	t.Run("reports order count", func(t *testing.T) {
		mux := newTestMux(t, memory.NewRepository(), testCatalog())
		doRequest(mux, http.MethodPost, "/api/orders", `{"product_id":"P1"}`)

		rec := doRequest(mux, http.MethodGet, "/api/test-db", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var payload struct {
			Message    string `json:"message"`
			OrderCount int64  `json:"order_count"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode test-db response: %v", err)
		}
		if payload.Message != "Database connection successful" {
			t.Errorf("unexpected message %q", payload.Message)
		}
		if payload.OrderCount != 1 {
			t.Errorf("expected order_count 1, got %d", payload.OrderCount)
		}
	})

	t.Run("store failure is 500", func(t *testing.T) {
		mux := newTestMux(t, failingRepository{}, testCatalog())

		rec := doRequest(mux, http.MethodGet, "/api/test-db", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if msg := decodeError(t, rec); msg != "Database connection failed" {
			t.Errorf("expected %q, got %q", "Database connection failed", msg)
		}
	})
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t, memory.NewRepository(), testCatalog())

	if rec := doRequest(mux, http.MethodPut, "/api/orders", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("PUT /api/orders: expected 405, got %d", rec.Code)
	}
	if rec := doRequest(mux, http.MethodPost, "/api/orders/1/status", `{"status":"confirmed"}`); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /api/orders/1/status: expected 405, got %d", rec.Code)
	}
	if rec := doRequest(mux, http.MethodDelete, "/api/orders/status/pending", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE /api/orders/status/pending: expected 405, got %d", rec.Code)
	}
}
