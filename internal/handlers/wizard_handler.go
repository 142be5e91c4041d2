package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/LightArtz/Tappit/internal/services"
)

// Файлы держим в памяти сессии до отправки; лимит на один файл.
const maxUploadSize = 10 << 20 // 10 MiB

// WizardHandler обрабатывает HTTP-запросы формы заказа.
type WizardHandler struct {
	wizard *services.WizardService
}

// NewWizardHandler создаёт новый экземпляр WizardHandler.
func NewWizardHandler(wizard *services.WizardService) *WizardHandler {
	return &WizardHandler{wizard: wizard}
}

// Start обрабатывает POST /api/wizard.
func (h *WizardHandler) Start(c echo.Context) error {
	id := h.wizard.Start()
	state, err := h.wizard.State(id)
	if err != nil {
		c.Logger().Errorf("failed to read new wizard session: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusCreated, state)
}

// State обрабатывает GET /api/wizard/:id.
func (h *WizardHandler) State(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	state, err := h.wizard.State(id)
	if err != nil {
		return wizardError(c, err)
	}
	return c.JSON(http.StatusOK, state)
}

// SetDetails обрабатывает PUT /api/wizard/:id/details.
// Сохраняет поля первого шага без проверок; проверки делает переход Next.
func (h *WizardHandler) SetDetails(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	var details services.OrderDetails
	if err := c.Bind(&details); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	if err := h.wizard.SetDetails(id, details); err != nil {
		return wizardError(c, err)
	}

	state, err := h.wizard.State(id)
	if err != nil {
		return wizardError(c, err)
	}
	return c.JSON(http.StatusOK, state)
}

// Next обрабатывает POST /api/wizard/:id/next.
// Отказ перехода - это не ошибка протокола: возвращаем текущее состояние
// с кодом 422, уведомление уже поставлено в очередь сервисом.
func (h *WizardHandler) Next(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	if _, err := h.wizard.Next(id); err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields), errors.Is(err, services.ErrMissingProof), errors.Is(err, services.ErrNoNextStep):
			state, stateErr := h.wizard.State(id)
			if stateErr != nil {
				return wizardError(c, stateErr)
			}
			return c.JSON(http.StatusUnprocessableEntity, state)
		default:
			return wizardError(c, err)
		}
	}

	state, err := h.wizard.State(id)
	if err != nil {
		return wizardError(c, err)
	}
	return c.JSON(http.StatusOK, state)
}

// Back обрабатывает POST /api/wizard/:id/back.
func (h *WizardHandler) Back(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	if _, err := h.wizard.Back(id); err != nil {
		return wizardError(c, err)
	}

	state, err := h.wizard.State(id)
	if err != nil {
		return wizardError(c, err)
	}
	return c.JSON(http.StatusOK, state)
}

// AttachProof обрабатывает POST /api/wizard/:id/proof (multipart, поле "file").
func (h *WizardHandler) AttachProof(c echo.Context) error {
	return h.attachFile(c, h.wizard.AttachProof)
}

// AttachDesign обрабатывает POST /api/wizard/:id/design (multipart, поле "file").
func (h *WizardHandler) AttachDesign(c echo.Context) error {
	return h.attachFile(c, h.wizard.AttachDesign)
}

func (h *WizardHandler) attachFile(c echo.Context, attach func(uuid.UUID, services.WizardFile) error) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fileHeader.Size > maxUploadSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file is too large")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read file")
	}
	if int64(len(data)) > maxUploadSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file is too large")
	}

	file := services.WizardFile{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}
	if err := attach(id, file); err != nil {
		return wizardError(c, err)
	}

	state, err := h.wizard.State(id)
	if err != nil {
		return wizardError(c, err)
	}
	return c.JSON(http.StatusOK, state)
}

// Submit обрабатывает POST /api/wizard/:id/submit.
func (h *WizardHandler) Submit(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	order, err := h.wizard.Submit(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "session not found")
		case errors.Is(err, services.ErrNotConfirmStep):
			return echo.NewHTTPError(http.StatusConflict, "order is not ready for submission")
		case errors.Is(err, services.ErrSubmitInProgress):
			return echo.NewHTTPError(http.StatusConflict, "submission already in progress")
		default:
			// Уведомление об ошибке уже в очереди; форма осталась на confirm
			c.Logger().Errorf("failed to submit order: %v", err)
			return echo.NewHTTPError(http.StatusBadGateway, "failed to place order")
		}
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"order_id": order.ID,
		"status":   string(order.Status),
	})
}

// parseSessionID читает идентификатор сессии из пути.
func parseSessionID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}
	return id, nil
}

// wizardError переводит ошибки сервиса визарда в HTTP-ошибки.
func wizardError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrSessionNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	c.Logger().Errorf("wizard request failed: %v", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
