package utils

import (
	"context"
	"time"
)

// SleepFunc espera d ou até o contexto ser cancelado
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep é a espera padrão, interrompida imediatamente pelo cancelamento
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
