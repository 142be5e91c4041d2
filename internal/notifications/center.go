package notifications

import (
	"crypto/rand"
	"math/big"
	"sync"
	"time"

	"github.com/LightArtz/Tappit/internal/models"
)

const idLength = 9

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Center - общепроцессная очередь уведомлений (тостов).
// Список принадлежит только центру: снаружи его никто не мутирует.
// Каждое уведомление удаляется само по истечении TTL либо вручную по ID.
type Center struct {
	mu     sync.Mutex
	toasts []models.Toast
	timers map[string]*time.Timer
	ttl    time.Duration
}

// NewCenter создаёт центр уведомлений с заданным временем жизни тоста.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = 4 * time.Second
	}
	return &Center{
		timers: make(map[string]*time.Timer),
		ttl:    ttl,
	}
}

// Add добавляет уведомление и планирует его удаление.
// ID уникален среди живых уведомлений и не переиспользуется.
func (c *Center) Add(message string, kind models.ToastKind) models.Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.newID()
	toast := models.Toast{
		ID:      id,
		Kind:    kind,
		Message: message,
	}
	c.toasts = append(c.toasts, toast)
	c.timers[id] = time.AfterFunc(c.ttl, func() {
		c.Remove(id)
	})

	return toast
}

// Success добавляет уведомление об успехе.
func (c *Center) Success(message string) models.Toast {
	return c.Add(message, models.ToastSuccess)
}

// Error добавляет уведомление об ошибке.
func (c *Center) Error(message string) models.Toast {
	return c.Add(message, models.ToastError)
}

// Remove удаляет уведомление по ID немедленно.
// Используется и для ручного закрытия, и таймером авто-удаления.
func (c *Center) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}

	for i, toast := range c.toasts {
		if toast.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// Active возвращает копию списка живых уведомлений.
func (c *Center) Active() []models.Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// newID генерирует короткий случайный идентификатор,
// которого нет среди живых уведомлений. Вызывается под мьютексом.
func (c *Center) newID() string {
	for {
		id := randomID()
		if _, exists := c.timers[id]; !exists {
			return id
		}
	}
}

func randomID() string {
	b := make([]byte, idLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(idAlphabet))))
		if err != nil {
			// crypto/rand практически не отказывает; подстраховка на нулевой байт
			b[i] = idAlphabet[0]
			continue
		}
		b[i] = idAlphabet[n.Int64()]
	}
	return string(b)
}
