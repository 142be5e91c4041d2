package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LightArtz/Tappit/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderStorage определяет интерфейс для работы с заказами.
type OrderStorage interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetAll(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	GetStats(ctx context.Context) (*models.OrderStats, error)
}

// PostgresOrderStorage реализует OrderStorage для PostgreSQL.
type PostgresOrderStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderStorage создаёт новый экземпляр PostgresOrderStorage.
func NewPostgresOrderStorage(pool *pgxpool.Pool) *PostgresOrderStorage {
	return &PostgresOrderStorage{pool: pool}
}

// Create создаёт новый заказ одной атомарной вставкой.
// ID, цена (по умолчанию из схемы) и временные метки назначаются базой.
func (s *PostgresOrderStorage) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (full_name, email, phone, nfc_link, design_kind, design_url, payment_proof_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, price, created_at, updated_at
	`

	designURL := sql.NullString{}
	if order.Design.Kind == models.DesignCustom && order.Design.URL != "" {
		designURL = sql.NullString{Valid: true, String: order.Design.URL}
	}

	proofURL := sql.NullString{}
	if order.PaymentProofURL != nil {
		proofURL = sql.NullString{Valid: true, String: *order.PaymentProofURL}
	}

	err := s.pool.QueryRow(ctx, query,
		order.FullName,
		order.Email,
		order.Phone,
		order.NFCLink,
		order.Design.Kind,
		designURL,
		proofURL,
		order.Status,
	).Scan(&order.ID, &order.Price, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByID возвращает заказ по идентификатору.
func (s *PostgresOrderStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT id, full_name, email, phone, nfc_link, design_kind, design_url, payment_proof_url, status, price, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	return scanOrder(s.pool.QueryRow(ctx, query, id))
}

// GetAll возвращает все заказы, новые первыми (сортировка по created_at DESC).
func (s *PostgresOrderStorage) GetAll(ctx context.Context) ([]*models.Order, error) {
	query := `
		SELECT id, full_name, email, phone, nfc_link, design_kind, design_url, payment_proof_url, status, price, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return orders, nil
}

// UpdateStatus обновляет статус одного заказа.
func (s *PostgresOrderStorage) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := s.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// GetStats возвращает сводку по заказам: количество по статусам и суммарную выручку.
func (s *PostgresOrderStorage) GetStats(ctx context.Context) (*models.OrderStats, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(price), 0)
		FROM orders
		GROUP BY status
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query order stats: %w", err)
	}
	defer rows.Close()

	stats := &models.OrderStats{
		ByStatus: make(map[string]int64),
	}
	revenue := decimal.Zero

	for rows.Next() {
		var (
			status string
			count  int64
			sum    decimal.Decimal
		)
		if err := rows.Scan(&status, &count, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
		// Отменённые заказы в выручку не попадают
		if models.OrderStatus(status) != models.OrderStatusCancelled {
			revenue = revenue.Add(sum)
		}
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	stats.Revenue, _ = revenue.Float64()
	return stats, nil
}

// scanOrder помогает читать заказ из строки результата.
func scanOrder(row pgx.Row) (*models.Order, error) {
	var (
		order      models.Order
		designKind string
		designURL  sql.NullString
		proofURL   sql.NullString
	)

	err := row.Scan(
		&order.ID,
		&order.FullName,
		&order.Email,
		&order.Phone,
		&order.NFCLink,
		&designKind,
		&designURL,
		&proofURL,
		&order.Status,
		&order.Price,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	order.Design = models.Design{Kind: models.DesignKind(designKind)}
	if designURL.Valid {
		order.Design.URL = designURL.String
	}
	if proofURL.Valid {
		url := proofURL.String
		order.PaymentProofURL = &url
	}

	return &order, nil
}
