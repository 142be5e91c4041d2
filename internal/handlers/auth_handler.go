package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LightArtz/Tappit/internal/models"
	"github.com/LightArtz/Tappit/internal/services"
)

// AuthHandler обрабатывает вход администратора.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login обрабатывает POST /api/admin/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request format")
	}

	admin, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		c.Logger().Errorf("failed to login admin: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	setAuthToken(c, token)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"admin_id": admin.ID,
		"email":    admin.Email,
	})
}

// setAuthToken устанавливает токен в cookie и заголовок ответа.
func setAuthToken(c echo.Context, token string) {
	cookie := &http.Cookie{
		Name:     "Authorization",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400, // 24 часа
	}
	c.SetCookie(cookie)

	// Также устанавливаем в заголовок для удобства
	c.Response().Header().Set("Authorization", "Bearer "+token)
}
