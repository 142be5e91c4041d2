package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/LightArtz/Tappit/internal/models"
	"github.com/LightArtz/Tappit/internal/utils"
	"github.com/google/uuid"
)

var (
	ErrInvalidStatus    = errors.New("unknown order status")
	ErrOrderNotInList   = errors.New("order not present in the loaded list")
	ErrOrdersNotLoaded  = errors.New("orders are not loaded")
	ErrOrdersLoadFailed = errors.New("failed to fetch orders")
)

// AdminConsole держит список заказов админки в памяти и выполняет
// оптимистичные правки статусов: снимок -> правка -> подтверждение
// в хранилище, с откатом на снимок при неудаче.
type AdminConsole struct {
	mu sync.Mutex

	orderStorage OrderStorage
	notifier     Notifier

	// Список принадлежит консоли; наружу уходят только копии.
	list    []models.Order
	loaded  bool
	loadErr string
}

// NewAdminConsole создаёт консоль администратора.
func NewAdminConsole(orderStorage OrderStorage, notifier Notifier) *AdminConsole {
	return &AdminConsole{
		orderStorage: orderStorage,
		notifier:     notifier,
	}
}

// Load загружает все заказы, новые первыми.
// При неудаче показывается уведомление и постоянная строка ошибки;
// автоматических повторов нет - пользователь обновляет вручную.
func (c *AdminConsole) Load(ctx context.Context) error {
	orders, err := c.orderStorage.GetAll(ctx)
	if err != nil {
		c.notifier.Error("Failed to fetch orders.")
		c.mu.Lock()
		c.loadErr = "Failed to fetch orders. Please refresh."
		c.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrOrdersLoadFailed, err)
	}

	list := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		list = append(list, *o)
	}

	c.mu.Lock()
	c.list = list
	c.loaded = true
	c.loadErr = ""
	c.mu.Unlock()
	return nil
}

// Orders возвращает копию текущего списка.
func (c *AdminConsole) Orders() []models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Order, len(c.list))
	copy(out, c.list)
	return out
}

// Loaded сообщает, была ли хотя бы одна удачная загрузка.
func (c *AdminConsole) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// LoadError возвращает постоянную строку ошибки последней загрузки
// (пустую, если загрузка удалась).
func (c *AdminConsole) LoadError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// UpdateStatus меняет статус заказа по оптимистичному протоколу:
// список правится сразу, затем идёт запись в хранилище; при неудаче
// список возвращается к снимку, сделанному до правки.
func (c *AdminConsole) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return ErrOrdersNotLoaded
	}

	idx := -1
	for i := range c.list {
		if c.list[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.mu.Unlock()
		return ErrOrderNotInList
	}

	// Снимок для отката, затем оптимистичная правка
	snapshot := make([]models.Order, len(c.list))
	copy(snapshot, c.list)
	c.list[idx].Status = status
	c.mu.Unlock()

	if err := c.orderStorage.UpdateStatus(ctx, id, status); err != nil {
		c.notifier.Error(fmt.Sprintf("Failed to update status: %v.", err))
		c.mu.Lock()
		c.list = snapshot
		c.mu.Unlock()
		return fmt.Errorf("update order status: %w", err)
	}

	c.notifier.Success(fmt.Sprintf("Order %s... status updated to %s.", utils.ShortID(id.String(), 6), status.Label()))
	return nil
}

// Stats возвращает сводку по заказам для шапки панели.
func (c *AdminConsole) Stats(ctx context.Context) (*models.OrderStats, error) {
	stats, err := c.orderStorage.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get order stats: %w", err)
	}
	return stats, nil
}
