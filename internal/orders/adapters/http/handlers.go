package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/subhub/order-service/internal/orders/app"
	"github.com/subhub/order-service/internal/orders/domain"
	"github.com/subhub/order-service/internal/orders/ports"
)

// Handler exposes HTTP endpoints for order operations and maps service
// failures to fixed status codes: invalid input 400, missing order 404,
// everything else 500. No retries; one failed attempt surfaces as is.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Register binds the order handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/orders", h.handleOrders)
	mux.HandleFunc("/api/orders/", h.handleOrderSubtree)
	mux.HandleFunc("/api/test-db", h.handleTestDB)
}

func (h *Handler) handleOrders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listOrders(w, r)
	case http.MethodPost:
		h.createOrder(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleOrderSubtree(w http.ResponseWriter, r *http.Request) {
	trimmed := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	if trimmed == "" {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	if rest, ok := strings.CutPrefix(trimmed, "status/"); ok {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.listOrdersByStatus(w, r, strings.TrimSuffix(rest, "/"))
		return
	}

	if idPart, ok := strings.CutSuffix(trimmed, "/status"); ok {
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.updateStatus(w, r, idPart)
		return
	}

	idPart := strings.TrimSuffix(trimmed, "/")
	switch r.Method {
	case http.MethodGet:
		h.getOrder(w, r, idPart)
	case http.MethodDelete:
		h.deleteOrder(w, r, idPart)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "Failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request, idPart string) {
	id, ok := parseOrderID(w, idPart)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Failed to fetch order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var payload app.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.CreateOrder(r.Context(), payload)
	if err != nil {
		h.writeServiceError(w, err, "Failed to create order")
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request, idPart string) {
	id, ok := parseOrderID(w, idPart)
	if !ok {
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, domain.OrderStatus(payload.Status))
	if err != nil {
		h.writeServiceError(w, err, "Failed to update order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) listOrdersByStatus(w http.ResponseWriter, r *http.Request, status string) {
	orders, err := h.service.ListOrdersByStatus(r.Context(), domain.OrderStatus(status))
	if err != nil {
		h.writeServiceError(w, err, "Failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request, idPart string) {
	id, ok := parseOrderID(w, idPart)
	if !ok {
		return
	}

	order, err := h.service.DeleteOrder(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Failed to delete order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Order deleted successfully",
		"order":   order,
	})
}

func (h *Handler) handleTestDB(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	count, err := h.service.CountOrders(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database connection failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Database connection successful",
		"order_count": count,
	})
}

// parseOrderID rejects non-numeric ids with 404: such an id can match
// no order. Writes the response itself when parsing fails.
func parseOrderID(w http.ResponseWriter, idPart string) (int64, bool) {
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, ports.ErrProductNotFound):
		writeError(w, http.StatusBadRequest, "Product not found")
	case errors.Is(err, ports.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ports.ErrCatalogUnavailable):
		writeError(w, http.StatusInternalServerError, "Failed to validate product")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
