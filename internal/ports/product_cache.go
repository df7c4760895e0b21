package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// ProductCache — кэш карточек товаров.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1); возврат копий сущности.
type ProductCache interface {
	// Get — вернуть товар по id; (product, true) при попадании, (nil, false) при промахе/истечении.
	Get(ctx context.Context, id int) (*domain.Product, bool)

	// Set — сохранить/обновить товар в кэше.
	Set(ctx context.Context, product *domain.Product) error

	// WarmUp — массовая загрузка кэша (например, после чтения списка).
	// Реализация должна поддерживать отмену контекста.
	WarmUp(ctx context.Context, products []domain.Product) error
}
