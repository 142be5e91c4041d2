package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LightArtz/Tappit/internal/storage"
)

func TestSessionJanitorExpiresIdleSessions(t *testing.T) {
	svc := newTestWizard(&storage.MockOrderStorage{}, &mockBlobStore{}, &mockNotifier{})

	base := time.Now()
	current := base
	svc.now = func() time.Time { return current }

	stale := svc.Start()
	current = base.Add(time.Hour)

	janitor := NewSessionJanitor(svc, 10*time.Millisecond, 30*time.Minute, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	janitor.Start(ctx)

	deadline := time.After(2 * time.Second)
	for {
		if _, err := svc.State(stale); errors.Is(err, ErrSessionNotFound) {
			return
		}
		select {
		case <-deadline:
			t.Fatal("janitor did not expire the idle session")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
