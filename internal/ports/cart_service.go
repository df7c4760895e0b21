package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// CartService — операции над корзиной, доступные транспорту.
type CartService interface {
	AddItem(ctx context.Context, productID int) error
	RemoveItem(ctx context.Context, productID int) error
	Clear(ctx context.Context) error
	Snapshot() []domain.LineItem
	Totals() domain.Totals
}

// CartListener — подписчик на изменения корзины.
type CartListener interface {
	CartChanged(ctx context.Context, event domain.CartEvent)
}

// CartListenerFunc — адаптер функции к CartListener.
type CartListenerFunc func(ctx context.Context, event domain.CartEvent)

func (f CartListenerFunc) CartChanged(ctx context.Context, event domain.CartEvent) { f(ctx, event) }
