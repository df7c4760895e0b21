package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// CatalogReadService — чтение каталога для слоя представления.
type CatalogReadService interface {
	Product(ctx context.Context, id int) (*domain.Product, error)
	ByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Trending(ctx context.Context, n int) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}
