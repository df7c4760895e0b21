//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeProduct — валидный товар каталога с заданными id и ценой.
func MakeProduct(id int, price float64, opts ...func(*domain.Product)) domain.Product {
	p := domain.Product{
		ID:          id,
		Title:       fmt.Sprintf("Product %d %s", id, UniqSuffix()),
		Price:       price,
		Description: "integration product",
		Category:    "electronics",
		Image:       fmt.Sprintf("https://img.example/%d.jpg", id),
		Rating:      domain.Rating{Rate: 4.1, Count: 10},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithCategory — опция категории для MakeProduct.
func WithCategory(c string) func(*domain.Product) {
	return func(p *domain.Product) { p.Category = c }
}

// MakeLineItem — позиция корзины из MakeProduct с заданным количеством.
func MakeLineItem(id int, price float64, qty int) domain.LineItem {
	p := MakeProduct(id, price)
	li := domain.NewLineItem(&p)
	li.Quantity = qty
	return li
}
