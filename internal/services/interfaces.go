package services

import (
	"context"
	"io"

	"github.com/LightArtz/Tappit/internal/models"
	"github.com/google/uuid"
)

// OrderStorage определяет интерфейс для работы с заказами.
type OrderStorage interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetAll(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	GetStats(ctx context.Context) (*models.OrderStats, error)
}

// AdminStorage определяет интерфейс для работы с администраторами.
type AdminStorage interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
}

// BlobStore определяет интерфейс хранилища файлов.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// Notifier - канал уведомлений, общий для визарда и админки.
type Notifier interface {
	Success(message string) models.Toast
	Error(message string) models.Toast
}
