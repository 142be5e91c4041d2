package notifications

import (
	"testing"
	"time"

	"github.com/LightArtz/Tappit/internal/models"
)

func TestCenterAdd(t *testing.T) {
	c := NewCenter(time.Minute)

	toast := c.Add("Order placed successfully!", models.ToastSuccess)

	if toast.ID == "" {
		t.Error("Add() returned toast with empty ID")
	}
	if len(toast.ID) != idLength {
		t.Errorf("Add() toast ID length = %d, want %d", len(toast.ID), idLength)
	}
	if toast.Kind != models.ToastSuccess {
		t.Errorf("Add() kind = %v, want %v", toast.Kind, models.ToastSuccess)
	}

	active := c.Active()
	if len(active) != 1 {
		t.Fatalf("Active() len = %d, want 1", len(active))
	}
	if active[0].Message != "Order placed successfully!" {
		t.Errorf("Active()[0].Message = %q", active[0].Message)
	}
}

func TestCenterUniqueIDs(t *testing.T) {
	c := NewCenter(time.Minute)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		toast := c.Add("msg", models.ToastInfo)
		if seen[toast.ID] {
			t.Fatalf("duplicate toast ID %q among live toasts", toast.ID)
		}
		seen[toast.ID] = true
	}
}

func TestCenterRemove(t *testing.T) {
	c := NewCenter(time.Minute)

	first := c.Add("first", models.ToastInfo)
	second := c.Add("second", models.ToastError)

	if !c.Remove(first.ID) {
		t.Error("Remove() = false for live toast")
	}

	active := c.Active()
	if len(active) != 1 {
		t.Fatalf("Active() len = %d, want 1", len(active))
	}
	if active[0].ID != second.ID {
		t.Errorf("remaining toast ID = %q, want %q", active[0].ID, second.ID)
	}

	// Повторное удаление ничего не находит
	if c.Remove(first.ID) {
		t.Error("Remove() = true for already removed toast")
	}
}

func TestCenterAutoExpiry(t *testing.T) {
	// Короткий TTL, чтобы не замедлять тесты
	c := NewCenter(50 * time.Millisecond)

	c.Add("short lived", models.ToastSuccess)

	if len(c.Active()) != 1 {
		t.Fatal("toast should be live immediately after Add()")
	}

	// Ждём истечения с запасом
	time.Sleep(150 * time.Millisecond)

	if got := len(c.Active()); got != 0 {
		t.Errorf("Active() len = %d after TTL, want 0", got)
	}
}

func TestCenterManualDismissBeforeExpiry(t *testing.T) {
	c := NewCenter(50 * time.Millisecond)

	toast := c.Add("dismiss me", models.ToastInfo)
	if !c.Remove(toast.ID) {
		t.Fatal("Remove() = false")
	}

	// Таймер не должен ничего сломать после ручного удаления
	time.Sleep(100 * time.Millisecond)

	if got := len(c.Active()); got != 0 {
		t.Errorf("Active() len = %d, want 0", got)
	}
}

func TestCenterDefaultTTL(t *testing.T) {
	c := NewCenter(0)
	if c.ttl != 4*time.Second {
		t.Errorf("default ttl = %v, want 4s", c.ttl)
	}
}
