package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		items     []domain.LineItem
		wantCount int
		wantPrice string
	}{
		{"empty", nil, 0, "0.00"},
		{"single", []domain.LineItem{{ID: 1, Price: 10, Quantity: 2}}, 2, "20.00"},
		{"mixed", []domain.LineItem{{ID: 1, Price: 10, Quantity: 2}, {ID: 2, Price: 5.5, Quantity: 1}}, 3, "25.50"},
		{"float_noise", []domain.LineItem{{ID: 1, Price: 0.1, Quantity: 3}, {ID: 2, Price: 0.2, Quantity: 1}}, 4, "0.50"},
		{"rounding", []domain.LineItem{{ID: 1, Price: 109.95, Quantity: 3}, {ID: 2, Price: 22.3, Quantity: 1}}, 4, "352.15"},
		{"half_up", []domain.LineItem{{ID: 1, Price: 0.005, Quantity: 1}}, 1, "0.01"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := domain.ComputeTotals(tt.items)
			require.Equal(t, tt.wantCount, got.TotalItemCount)
			require.Equal(t, tt.wantPrice, got.TotalPrice.StringFixed(2))
		})
	}
}

func TestCloneItems_Independent(t *testing.T) {
	orig := []domain.LineItem{{ID: 1, Quantity: 1}}
	cp := domain.CloneItems(orig)
	cp[0].Quantity = 5
	require.Equal(t, 1, orig[0].Quantity)
}

func TestFetchError_Is(t *testing.T) {
	nf := &domain.FetchError{ProductID: 7, Status: 404, Err: domain.ErrProductNotFound}
	wrapped := fmt.Errorf("add item: %w", nf)

	require.ErrorIs(t, wrapped, domain.ErrFetch)
	require.ErrorIs(t, wrapped, domain.ErrProductNotFound)

	var fe *domain.FetchError
	require.True(t, errors.As(wrapped, &fe))
	require.True(t, fe.NotFound())
	require.Contains(t, fe.Error(), "product 7")

	netErr := &domain.FetchError{Err: errors.New("connection refused")}
	require.ErrorIs(t, netErr, domain.ErrFetch)
	require.False(t, netErr.NotFound())
	require.Contains(t, netErr.Error(), "fetch products")
}
