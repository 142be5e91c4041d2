package services

import (
	"context"
	"log"
	"time"
)

// SessionJanitor периодически удаляет брошенные сессии визарда.
type SessionJanitor struct {
	wizard   *WizardService
	interval time.Duration
	ttl      time.Duration
	logger   *log.Logger
}

func NewSessionJanitor(wizard *WizardService, interval, ttl time.Duration, logger *log.Logger) *SessionJanitor {
	if interval <= 0 {
		interval = time.Minute
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if logger == nil {
		logger = log.Default()
	}
	return &SessionJanitor{
		wizard:   wizard,
		interval: interval,
		ttl:      ttl,
		logger:   logger,
	}
}

// Start запускает уборщик в отдельной горутине и останавливается по ctx.Done().
func (j *SessionJanitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := j.wizard.ExpireIdle(j.ttl); removed > 0 {
					j.logger.Printf("expired %d idle wizard sessions", removed)
				}
			}
		}
	}()
}
