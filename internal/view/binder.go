package view

import (
	"context"
	"sync"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

var _ ports.CartListener = (*Binder)(nil)

// Binder — подписчик CartStore: перерисовывает панель корзины на каждое событие
// и хранит последнюю версию для чтения транспортом.
type Binder struct {
	mu    sync.RWMutex
	panel CartPanel
	seen  bool
}

func NewBinder() *Binder {
	return &Binder{panel: Panel(domain.CartEvent{Totals: domain.ComputeTotals(nil)})}
}

func (b *Binder) CartChanged(_ context.Context, ev domain.CartEvent) {
	panel := Panel(ev)
	b.mu.Lock()
	b.panel = panel
	b.seen = true
	b.mu.Unlock()
}

// Current — последняя отрисованная панель; копия строк.
func (b *Binder) Current() CartPanel {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p := b.panel
	p.Lines = append([]CartLine(nil), b.panel.Lines...)
	if p.Lines == nil {
		p.Lines = []CartLine{}
	}
	return p
}

// Rendered — было ли хотя бы одно событие (включая загрузку).
func (b *Binder) Rendered() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.seen
}
