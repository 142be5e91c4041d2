package storage

import (
	"context"

	"github.com/LightArtz/Tappit/internal/models"
	"github.com/google/uuid"
)

// MockOrderStorage - мок для тестирования (экспортируемый для использования в других пакетах)
type MockOrderStorage struct {
	CreateFunc       func(ctx context.Context, order *models.Order) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetAllFunc       func(ctx context.Context) ([]*models.Order, error)
	UpdateStatusFunc func(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	GetStatsFunc     func(ctx context.Context) (*models.OrderStats, error)
}

func (m *MockOrderStorage) Create(ctx context.Context, order *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	return nil
}

func (m *MockOrderStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrOrderNotFound
}

func (m *MockOrderStorage) GetAll(ctx context.Context) ([]*models.Order, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	return []*models.Order{}, nil
}

func (m *MockOrderStorage) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockOrderStorage) GetStats(ctx context.Context) (*models.OrderStats, error) {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(ctx)
	}
	return &models.OrderStats{ByStatus: map[string]int64{}}, nil
}

// MockAdminStorage - мок хранилища администраторов.
type MockAdminStorage struct {
	CreateFunc     func(ctx context.Context, admin *models.AdminUser) error
	GetByEmailFunc func(ctx context.Context, email string) (*models.AdminUser, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
}

func (m *MockAdminStorage) Create(ctx context.Context, admin *models.AdminUser) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, admin)
	}
	return nil
}

func (m *MockAdminStorage) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, ErrAdminNotFound
}

func (m *MockAdminStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrAdminNotFound
}
