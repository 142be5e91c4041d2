package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LightArtz/Tappit/internal/auth"
	"github.com/LightArtz/Tappit/internal/models"
	"github.com/LightArtz/Tappit/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyCredentials   = errors.New("email and password are required")
)

// AuthService определяет интерфейс аутентификации администраторов.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.AdminUser, string, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

// AuthServiceImpl реализует AuthService.
// Админ проверяется по bcrypt-хешу в базе, сессия - это JWT токен;
// статического сравнения паролей здесь нет намеренно.
type AuthServiceImpl struct {
	adminStorage    AdminStorage
	jwtSecret       string
	tokenExpiration time.Duration
}

// NewAuthService создаёт новый экземпляр AuthService.
func NewAuthService(adminStorage AdminStorage, jwtSecret string, tokenExpiration time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{
		adminStorage:    adminStorage,
		jwtSecret:       jwtSecret,
		tokenExpiration: tokenExpiration,
	}
}

// Login аутентифицирует администратора и возвращает JWT токен.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*models.AdminUser, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrEmptyCredentials
	}

	admin, err := s.adminStorage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrAdminNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get admin: %w", err)
	}

	if !auth.CheckPassword(password, admin.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(admin)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return admin, token, nil
}

// EnsureAdmin создаёт администратора при старте, если его ещё нет.
// Повторный запуск с теми же данными ничего не меняет.
func (s *AuthServiceImpl) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return ErrEmptyCredentials
	}

	_, err := s.adminStorage.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrAdminNotFound) {
		return fmt.Errorf("failed to check admin: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.AdminUser{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.adminStorage.Create(ctx, admin); err != nil {
		// Гонка двух стартов: администратора уже создали
		if errors.Is(err, storage.ErrEmailExists) {
			return nil
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

// generateToken генерирует JWT токен для администратора.
func (s *AuthServiceImpl) generateToken(admin *models.AdminUser) (string, error) {
	exp := s.tokenExpiration
	if exp <= 0 {
		exp = 24 * time.Hour
	}
	token, err := auth.GenerateToken(admin, s.jwtSecret, exp)
	if err != nil {
		return "", err
	}
	return token, nil
}
