package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

type ProductValidator interface {
	Validate(ctx context.Context, product *domain.Product) error
}
