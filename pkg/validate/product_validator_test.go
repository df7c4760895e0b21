package validate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

func validProduct() *domain.Product {
	return &domain.Product{
		ID:       1,
		Title:    "Fjallraven - Foldsack No. 1 Backpack",
		Price:    109.95,
		Category: "men's clothing",
		Image:    "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
		Rating:   domain.Rating{Rate: 3.9, Count: 120},
	}
}

func TestProductValidator_Valid(t *testing.T) {
	v := validate.NewProductValidator()
	if err := v.Validate(context.Background(), validProduct()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProductValidator_FreeProductAllowed(t *testing.T) {
	v := validate.NewProductValidator()
	p := validProduct()
	p.Price = 0
	if err := v.Validate(context.Background(), p); err != nil {
		t.Fatalf("zero price must be valid, got %v", err)
	}
}

func TestProductValidator_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(p *domain.Product)
	}{
		{"zero_id", func(p *domain.Product) { p.ID = 0 }},
		{"negative_id", func(p *domain.Product) { p.ID = -3 }},
		{"empty_title", func(p *domain.Product) { p.Title = "" }},
		{"negative_price", func(p *domain.Product) { p.Price = -0.01 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := validProduct()
			tt.mutate(p)
			err := validate.NewProductValidator().Validate(context.Background(), p)
			if !errors.Is(err, validate.ErrInvalidProduct) {
				t.Fatalf("want ErrInvalidProduct, got %v", err)
			}
		})
	}
}

func TestProductValidator_Nil(t *testing.T) {
	err := validate.NewProductValidator().Validate(context.Background(), nil)
	if !errors.Is(err, validate.ErrInvalidProduct) {
		t.Fatalf("want ErrInvalidProduct, got %v", err)
	}
}
