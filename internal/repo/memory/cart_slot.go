package memory

import (
	"context"
	"sync"

	"github.com/Gunvolt24/storefront/internal/ports"
)

var _ ports.CartStorage = (*CartSlot)(nil)

// CartSlot — слот корзины в памяти процесса.
type CartSlot struct {
	mu  sync.RWMutex
	raw []byte
}

func NewCartSlot() *CartSlot { return &CartSlot{} }

func (s *CartSlot) Load(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.raw == nil {
		return nil, nil
	}
	return append([]byte(nil), s.raw...), nil
}

func (s *CartSlot) Save(_ context.Context, raw []byte) error {
	s.mu.Lock()
	s.raw = append([]byte(nil), raw...)
	s.mu.Unlock()
	return nil
}
