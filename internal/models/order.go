package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus описывает статус обработки заказа.
type OrderStatus string

const (
	OrderStatusPendingVerification OrderStatus = "pending_payment_verification"
	OrderStatusPreparing           OrderStatus = "preparing_product"
	OrderStatusReadyForPickup      OrderStatus = "ready_for_pickup"
	OrderStatusCompleted           OrderStatus = "completed"
	OrderStatusCancelled           OrderStatus = "cancelled"
)

// AllStatuses - порядок статусов, как они показываются в админке.
// Это не конечный автомат: допустим переход из любого статуса в любой.
var AllStatuses = []OrderStatus{
	OrderStatusPendingVerification,
	OrderStatusPreparing,
	OrderStatusReadyForPickup,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// IsValid проверяет, входит ли статус в перечисление.
func (s OrderStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label возвращает отображаемое название статуса.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPendingVerification:
		return "Pending Payment Verification"
	case OrderStatusPreparing:
		return "Preparing Product"
	case OrderStatusReadyForPickup:
		return "Ready for Pickup"
	case OrderStatusCompleted:
		return "Completed"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// StatusStyle - цвета оформления статуса (фон/рамка/текст).
// Чистая презентация, на поведение не влияет.
type StatusStyle struct {
	Background string `json:"background"`
	Border     string `json:"border"`
	Text       string `json:"text"`
}

// Style возвращает оформление статуса для админки.
func (s OrderStatus) Style() StatusStyle {
	switch s {
	case OrderStatusCompleted:
		return StatusStyle{Background: "green-100", Border: "green-200", Text: "green-800"}
	case OrderStatusCancelled:
		return StatusStyle{Background: "red-100", Border: "red-200", Text: "red-800"}
	case OrderStatusPendingVerification:
		return StatusStyle{Background: "yellow-100", Border: "yellow-200", Text: "yellow-800"}
	case OrderStatusPreparing:
		return StatusStyle{Background: "blue-100", Border: "blue-200", Text: "blue-800"}
	case OrderStatusReadyForPickup:
		return StatusStyle{Background: "indigo-100", Border: "indigo-200", Text: "indigo-800"}
	default:
		return StatusStyle{Background: "gray-100", Border: "gray-200", Text: "gray-800"}
	}
}

// DesignKind различает стандартный дизайн и загруженный пользователем.
type DesignKind string

const (
	DesignStandard DesignKind = "standard"
	DesignCustom   DesignKind = "custom"
)

// Design - дизайн брелока. Раньше это было одно строковое поле,
// в котором жили и метка, и URL картинки; теперь варианты разведены явно.
type Design struct {
	Kind DesignKind
	// URL заполнен только для Kind == DesignCustom.
	URL string
}

// Display возвращает строку дизайна в том виде, в котором её показывает админка:
// метку для стандартного дизайна или URL загруженной картинки.
func (d Design) Display(fallbackLabel string) string {
	if d.Kind == DesignCustom && d.URL != "" {
		return d.URL
	}
	return fallbackLabel
}

// Order представляет заказ брелока.
type Order struct {
	ID              uuid.UUID       `db:"id"`
	FullName        string          `db:"full_name"`
	Email           string          `db:"email"`
	Phone           string          `db:"phone"`
	NFCLink         string          `db:"nfc_link"`
	Design          Design          `db:"-"`
	PaymentProofURL *string         `db:"payment_proof_url"`
	Status          OrderStatus     `db:"status"`
	Price           decimal.Decimal `db:"price"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// OrderResponse ответ для списка заказов в админке.
type OrderResponse struct {
	ID              string      `json:"id"`
	FullName        string      `json:"full_name"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	NFCLink         string      `json:"nfc_link"`
	NFCLinkHref     string      `json:"nfc_link_href"`
	Design          string      `json:"design"`
	PaymentProofURL *string     `json:"payment_proof_url"`
	Status          string      `json:"status"`
	StatusLabel     string      `json:"status_label"`
	StatusStyle     StatusStyle `json:"status_style"`
	Price           float64     `json:"price"`
	CreatedAt       string      `json:"created_at"`
}

// StatusUpdateRequest - запрос на смену статуса заказа.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// OrderStats - сводка по заказам для шапки админки.
type OrderStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
	Revenue  float64          `json:"revenue"`
}
