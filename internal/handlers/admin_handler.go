package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/LightArtz/Tappit/internal/models"
	"github.com/LightArtz/Tappit/internal/services"
	"github.com/LightArtz/Tappit/internal/utils"
)

// AdminHandler обрабатывает запросы панели администратора.
type AdminHandler struct {
	console        *services.AdminConsole
	fallbackDesign string
}

// NewAdminHandler создаёт новый экземпляр AdminHandler.
func NewAdminHandler(console *services.AdminConsole, fallbackDesign string) *AdminHandler {
	if fallbackDesign == "" {
		fallbackDesign = "Standard"
	}
	return &AdminHandler{console: console, fallbackDesign: fallbackDesign}
}

// GetOrders обрабатывает GET /api/admin/orders.
// Список отдаётся из памяти консоли; при первом обращении загружается из базы.
func (h *AdminHandler) GetOrders(c echo.Context) error {
	if !h.console.Loaded() && h.console.LoadError() == "" {
		if err := h.console.Load(c.Request().Context()); err != nil {
			c.Logger().Errorf("failed to load orders: %v", err)
			return c.JSON(http.StatusOK, map[string]interface{}{
				"orders": []*models.OrderResponse{},
				"error":  h.console.LoadError(),
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": h.mapOrdersToResponse(h.console.Orders()),
		"error":  h.console.LoadError(),
	})
}

// Refresh обрабатывает POST /api/admin/orders/refresh.
// Явная перезагрузка списка; автоматических повторов при ошибке нет.
func (h *AdminHandler) Refresh(c echo.Context) error {
	if err := h.console.Load(c.Request().Context()); err != nil {
		c.Logger().Errorf("failed to refresh orders: %v", err)
		return c.JSON(http.StatusBadGateway, map[string]interface{}{
			"orders": []*models.OrderResponse{},
			"error":  h.console.LoadError(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": h.mapOrdersToResponse(h.console.Orders()),
		"error":  "",
	})
}

// UpdateStatus обрабатывает PATCH /api/admin/orders/:id/status.
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req models.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	err = h.console.UpdateStatus(c.Request().Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "unknown status")
		case errors.Is(err, services.ErrOrdersNotLoaded), errors.Is(err, services.ErrOrderNotInList):
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		default:
			// Список уже откатан, уведомление об ошибке в очереди
			c.Logger().Errorf("failed to update order status: %v", err)
			return echo.NewHTTPError(http.StatusBadGateway, "failed to update status")
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": h.mapOrdersToResponse(h.console.Orders()),
	})
}

// GetStats обрабатывает GET /api/admin/stats.
func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.console.Stats(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("failed to get order stats: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, stats)
}

// mapOrdersToResponse преобразует domain модели заказов в DTO для HTTP-ответа.
func (h *AdminHandler) mapOrdersToResponse(orders []models.Order) []*models.OrderResponse {
	response := make([]*models.OrderResponse, 0, len(orders))
	for _, order := range orders {
		price, _ := order.Price.Float64()
		response = append(response, &models.OrderResponse{
			ID:              order.ID.String(),
			FullName:        order.FullName,
			Email:           order.Email,
			Phone:           order.Phone,
			NFCLink:         order.NFCLink,
			NFCLinkHref:     utils.DisplayLink(order.NFCLink),
			Design:          order.Design.Display(h.fallbackDesign),
			PaymentProofURL: order.PaymentProofURL,
			Status:          string(order.Status),
			StatusLabel:     order.Status.Label(),
			StatusStyle:     order.Status.Style(),
			Price:           price,
			CreatedAt:       order.CreatedAt.Format(time.RFC3339),
		})
	}
	return response
}
