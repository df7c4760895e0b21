package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// ProductFetcher — получение полной карточки товара по id (единственная зависимость CartStore от каталога).
type ProductFetcher interface {
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
}

// CatalogClient — удалённый каталог: список и карточка.
type CatalogClient interface {
	ProductFetcher
	ListProducts(ctx context.Context) ([]domain.Product, error)
}
