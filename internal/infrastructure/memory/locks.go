package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/Tienda-POS/internal/domain"
)

// lockTable es un mapa de mutex por clave ("product:<id>", "customer:<id>").
// Cada mutex es un canal de capacidad 1 para poder esperar con timeout.
type lockTable struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{slots: make(map[string]chan struct{})}
}

func (t *lockTable) slot(key string) chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch, ok := t.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		t.slots[key] = ch
	}
	return ch
}

// acquire espera el mutex de key hasta timeout o hasta que ctx termine.
func (t *lockTable) acquire(ctx context.Context, key string, timeout time.Duration) error {
	ch := t.slot(key)
	select {
	case ch <- struct{}{}:
		return nil
	default:
	}

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}
	select {
	case ch <- struct{}{}:
		return nil
	case <-expired:
		return &domain.LockTimeoutError{Resource: key}
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &domain.LockTimeoutError{Resource: key, Err: ctx.Err()}
		}
		return ctx.Err()
	}
}

func (t *lockTable) release(key string) {
	<-t.slot(key)
}
