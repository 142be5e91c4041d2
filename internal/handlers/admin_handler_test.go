package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/LightArtz/Tappit/internal/models"
	"github.com/LightArtz/Tappit/internal/services"
	"github.com/LightArtz/Tappit/internal/storage"
)

type ordersResponse struct {
	Orders []*models.OrderResponse `json:"orders"`
	Error  string                  `json:"error"`
}

func adminOrders() []*models.Order {
	now := time.Now()
	return []*models.Order{
		{
			ID:        uuid.New(),
			FullName:  "Jane Doe",
			Email:     "jane@x.com",
			Phone:     "0812000",
			NFCLink:   "x.com/jane",
			Design:    models.Design{Kind: models.DesignStandard},
			Status:    models.OrderStatusPendingVerification,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.New(),
			FullName:  "John Roe",
			Email:     "john@x.com",
			Phone:     "0813000",
			NFCLink:   "https://x.com/john",
			Design:    models.Design{Kind: models.DesignCustom, URL: "https://cdn.example.com/design_uploads/1_a.png"},
			Status:    models.OrderStatusPreparing,
			CreatedAt: now.Add(-time.Hour),
			UpdatedAt: now.Add(-time.Hour),
		},
	}
}

func newTestAdminHandler(orderStorage *storage.MockOrderStorage) (*AdminHandler, *services.AdminConsole) {
	console := services.NewAdminConsole(orderStorage, stubNotifier{})
	return NewAdminHandler(console, "Standard"), console
}

func TestAdminHandler_GetOrders(t *testing.T) {
	e := echo.New()
	orders := adminOrders()
	orderStorage := &storage.MockOrderStorage{
		GetAllFunc: func(_ context.Context) ([]*models.Order, error) {
			return orders, nil
		},
	}
	handler, _ := newTestAdminHandler(orderStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetOrders(c); err != nil {
		t.Fatalf("GetOrders() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp ordersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(resp.Orders))
	}

	// Ссылка без схемы получает https:// только в href
	first := resp.Orders[0]
	if first.NFCLink != "x.com/jane" {
		t.Errorf("nfc_link = %q, stored value must not change", first.NFCLink)
	}
	if first.NFCLinkHref != "https://x.com/jane" {
		t.Errorf("nfc_link_href = %q", first.NFCLinkHref)
	}
	if first.Design != "Standard" {
		t.Errorf("design = %q, want Standard", first.Design)
	}
	if first.StatusLabel != "Pending Payment Verification" {
		t.Errorf("status_label = %q", first.StatusLabel)
	}
	if first.StatusStyle.Background != "yellow-100" {
		t.Errorf("status_style = %+v", first.StatusStyle)
	}

	second := resp.Orders[1]
	if second.NFCLinkHref != "https://x.com/john" {
		t.Errorf("href with scheme = %q, must stay as is", second.NFCLinkHref)
	}
	if second.Design != "https://cdn.example.com/design_uploads/1_a.png" {
		t.Errorf("custom design = %q", second.Design)
	}
}

func TestAdminHandler_GetOrdersLoadFailure(t *testing.T) {
	e := echo.New()
	orderStorage := &storage.MockOrderStorage{
		GetAllFunc: func(_ context.Context) ([]*models.Order, error) {
			return nil, errors.New("db down")
		},
	}
	handler, _ := newTestAdminHandler(orderStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Ошибка загрузки показывается в теле, не как HTTP-ошибка
	if err := handler.GetOrders(c); err != nil {
		t.Fatalf("GetOrders() error = %v", err)
	}
	var resp ordersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "Failed to fetch orders. Please refresh." {
		t.Errorf("error = %q", resp.Error)
	}
	if len(resp.Orders) != 0 {
		t.Errorf("orders = %d, want 0", len(resp.Orders))
	}
}

func TestAdminHandler_Refresh(t *testing.T) {
	e := echo.New()
	calls := 0
	orderStorage := &storage.MockOrderStorage{
		GetAllFunc: func(_ context.Context) ([]*models.Order, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("db down")
			}
			return adminOrders(), nil
		},
	}
	handler, console := newTestAdminHandler(orderStorage)

	// Первая загрузка падает
	req := httptest.NewRequest(http.MethodPost, "/api/admin/orders/refresh", nil)
	rec := httptest.NewRecorder()
	if err := handler.Refresh(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}

	// Ручное обновление после ошибки приносит данные и снимает ошибку
	req = httptest.NewRequest(http.MethodPost, "/api/admin/orders/refresh", nil)
	rec = httptest.NewRecorder()
	if err := handler.Refresh(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Refresh() retry error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if console.LoadError() != "" {
		t.Errorf("LoadError() = %q, want empty", console.LoadError())
	}
}

func TestAdminHandler_UpdateStatus(t *testing.T) {
	orders := adminOrders()

	tests := []struct {
		name           string
		orderID        string
		requestBody    string
		updateErr      error
		expectedStatus int
	}{
		{
			name:           "successful update",
			orderID:        orders[0].ID.String(),
			requestBody:    `{"status":"completed"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown status",
			orderID:        orders[0].ID.String(),
			requestBody:    `{"status":"shipped"}`,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "order not found",
			orderID:        uuid.New().String(),
			requestBody:    `{"status":"completed"}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid order id",
			orderID:        "not-a-uuid",
			requestBody:    `{"status":"completed"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "storage failure",
			orderID:        orders[0].ID.String(),
			requestBody:    `{"status":"completed"}`,
			updateErr:      errors.New("db down"),
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			orderStorage := &storage.MockOrderStorage{
				GetAllFunc: func(_ context.Context) ([]*models.Order, error) {
					return orders, nil
				},
				UpdateStatusFunc: func(_ context.Context, _ uuid.UUID, _ models.OrderStatus) error {
					return tt.updateErr
				},
			}
			handler, console := newTestAdminHandler(orderStorage)
			if err := console.Load(context.Background()); err != nil {
				t.Fatal(err)
			}

			req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/"+tt.orderID+"/status", strings.NewReader(tt.requestBody))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(tt.orderID)

			err := handler.UpdateStatus(c)

			if tt.expectedStatus < 400 {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				if rec.Code != tt.expectedStatus {
					t.Errorf("Expected status %d, got %d", tt.expectedStatus, rec.Code)
				}
			} else {
				if err == nil {
					t.Errorf("Expected error, got nil")
				}
				if he, ok := err.(*echo.HTTPError); ok {
					if he.Code != tt.expectedStatus {
						t.Errorf("Expected status %d, got %d", tt.expectedStatus, he.Code)
					}
				}
			}
		})
	}
}

func TestAdminHandler_GetStats(t *testing.T) {
	e := echo.New()
	orderStorage := &storage.MockOrderStorage{
		GetStatsFunc: func(_ context.Context) (*models.OrderStats, error) {
			return &models.OrderStats{
				Total:    5,
				ByStatus: map[string]int64{"completed": 3, "cancelled": 2},
				Revenue:  75000,
			}, nil
		},
	}
	handler, _ := newTestAdminHandler(orderStorage)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec := httptest.NewRecorder()
	if err := handler.GetStats(e.NewContext(req, rec)); err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	var stats models.OrderStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Total != 5 || stats.Revenue != 75000 {
		t.Errorf("stats = %+v", stats)
	}
}
