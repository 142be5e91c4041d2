package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/LightArtz/Tappit/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrAdminNotFound = errors.New("admin not found")
	ErrEmailExists   = errors.New("email already exists")
)

// AdminStorage определяет интерфейс для работы с администраторами.
type AdminStorage interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
}

// PostgresAdminStorage реализует AdminStorage для PostgreSQL.
type PostgresAdminStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresAdminStorage создаёт новый экземпляр PostgresAdminStorage.
func NewPostgresAdminStorage(pool *pgxpool.Pool) *PostgresAdminStorage {
	return &PostgresAdminStorage{pool: pool}
}

// Create создаёт нового администратора.
func (s *PostgresAdminStorage) Create(ctx context.Context, admin *models.AdminUser) error {
	query := `
		INSERT INTO admin_users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	// Генерируем UUID, если не задан
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}

	err := s.pool.QueryRow(ctx, query,
		admin.ID,
		admin.Email,
		admin.PasswordHash,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)

	if err != nil {
		// Проверка на уникальность email
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

// GetByEmail ищет администратора по email.
func (s *PostgresAdminStorage) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM admin_users
		WHERE email = $1
	`

	admin := &models.AdminUser{}
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}

	return admin, nil
}

// GetByID ищет администратора по ID.
func (s *PostgresAdminStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM admin_users
		WHERE id = $1
	`

	admin := &models.AdminUser{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to get admin by id: %w", err)
	}

	return admin, nil
}
