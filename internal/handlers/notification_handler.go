package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LightArtz/Tappit/internal/notifications"
)

// NotificationHandler отдаёт активные уведомления и закрывает их по запросу.
type NotificationHandler struct {
	center *notifications.Center
}

// NewNotificationHandler создаёт новый экземпляр NotificationHandler.
func NewNotificationHandler(center *notifications.Center) *NotificationHandler {
	return &NotificationHandler{center: center}
}

// GetActive обрабатывает GET /api/notifications.
// Уведомления, чей срок истёк, к этому моменту уже удалены центром.
func (h *NotificationHandler) GetActive(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"notifications": h.center.Active(),
	})
}

// Dismiss обрабатывает DELETE /api/notifications/:id.
// Ручное закрытие до истечения срока; повторное закрытие не ошибка.
func (h *NotificationHandler) Dismiss(c echo.Context) error {
	h.center.Remove(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}
