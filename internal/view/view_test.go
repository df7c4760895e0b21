package view_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/view"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 25, "short..."},
		{"", 25, "..."},
		{strings.Repeat("a", 25), 25, strings.Repeat("a", 25) + "..."},
		{strings.Repeat("a", 26), 25, strings.Repeat("a", 25) + "..."},
		{"Фьяллравен рюкзак для ноутбука", 10, "Фьяллравен..."},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, view.Truncate(tc.in, tc.limit))
	}
}

func TestPrice(t *testing.T) {
	assert.Equal(t, "$10", view.Price(10))
	assert.Equal(t, "$5.5", view.Price(5.5))
	assert.Equal(t, "$109.95", view.Price(109.95))
}

func TestCards(t *testing.T) {
	long := "Fjallraven - Foldsack No. 1 Backpack, Fits 15 Laptops"
	cards := view.Cards([]domain.Product{
		{ID: 1, Title: long, Price: 109.95, Category: "men's clothing", Image: "i1"},
		{ID: 2, Title: "Ring", Price: 10, Category: "jewelery"},
	})

	require.Len(t, cards, 2)
	assert.Equal(t, []rune(long)[:40], []rune(strings.TrimSuffix(cards[0].Title, "...")))
	assert.True(t, strings.HasSuffix(cards[0].Title, "..."))
	assert.Equal(t, "$109.95", cards[0].Price)
	assert.Equal(t, "Men's Clothing", cards[0].CategoryLabel)
	assert.Equal(t, "/api/products/1", cards[0].DetailsURL)
	assert.Equal(t, "/api/cart/items/1", cards[0].AddURL)
	assert.Equal(t, "Ring...", cards[1].Title)
}

func TestCategoryBar(t *testing.T) {
	cats := []string{"electronics", "jewelery"}

	active := func(bar []view.CategoryButton) []string {
		var out []string
		for _, b := range bar {
			if b.Active {
				out = append(out, b.Label)
			}
		}
		return out
	}

	bar := view.CategoryBar(cats, "")
	require.Len(t, bar, 3)
	assert.Equal(t, "All", bar[0].Label)
	assert.Equal(t, []string{"All"}, active(bar))

	assert.Equal(t, []string{"jewelery"}, active(view.CategoryBar(cats, "jewelery")))
	assert.Equal(t, []string{"All"}, active(view.CategoryBar(cats, "toys")))
	assert.Equal(t, []string{"All"}, active(view.CategoryBar(nil, "All")))
}

func TestPanel(t *testing.T) {
	items := []domain.LineItem{
		{ID: 1, Title: "Mens Casual Premium Slim Fit T-Shirts", Price: 10, Quantity: 2},
		{ID: 2, Title: "Ring", Price: 5.5, Quantity: 1},
	}
	p := view.Panel(domain.CartEvent{Items: items, Totals: domain.ComputeTotals(items)})

	require.Len(t, p.Lines, 2)
	assert.Equal(t, "Mens Casual Premium Slim ...", p.Lines[0].Title)
	assert.Equal(t, "2 x $10", p.Lines[0].Text)
	assert.Equal(t, "1 x $5.5", p.Lines[1].Text)
	assert.Equal(t, 3, p.Count)
	assert.Equal(t, "Total: $25.50", p.Total)
}

func TestBinder(t *testing.T) {
	b := view.NewBinder()
	assert.False(t, b.Rendered())
	assert.Equal(t, "Total: $0.00", b.Current().Total)
	assert.NotNil(t, b.Current().Lines)

	items := []domain.LineItem{{ID: 3, Title: "Lamp", Price: 1.25, Quantity: 4}}
	b.CartChanged(context.Background(), domain.CartEvent{
		Op:     domain.CartOpAdd,
		Items:  items,
		Totals: domain.Totals{TotalItemCount: 4, TotalPrice: decimal.RequireFromString("5")},
	})

	cur := b.Current()
	assert.True(t, b.Rendered())
	assert.Equal(t, 4, cur.Count)
	assert.Equal(t, "Total: $5.00", cur.Total)

	cur.Lines[0].Title = "changed"
	assert.Equal(t, "Lamp...", b.Current().Lines[0].Title)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, view.WriteCategoryBar(&buf, view.CategoryBar([]string{"a", "b"}, "b")))
	assert.Equal(t, "All a [b]\n", buf.String())

	buf.Reset()
	items := []domain.LineItem{{ID: 1, Title: "Ring", Price: 5.5, Quantity: 2}}
	require.NoError(t, view.WritePanel(&buf, view.Panel(domain.CartEvent{Items: items, Totals: domain.ComputeTotals(items)})))
	out := buf.String()
	assert.Contains(t, out, "2 x $5.5")
	assert.Contains(t, out, "Items: 2")
	assert.Contains(t, out, "Total: $11.00")

	buf.Reset()
	require.NoError(t, view.WriteCards(&buf, view.Cards([]domain.Product{{ID: 9, Title: "Cap", Price: 3, Category: "hats"}})))
	assert.Contains(t, buf.String(), "Hats")
	assert.Contains(t, buf.String(), "$3")
}

func TestWriteCards_ColumnsAligned(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, view.WriteCards(&buf, view.Cards([]domain.Product{
		{ID: 9, Title: "Cap", Price: 3, Category: "hats"},
		{ID: 12, Title: "Gold ring", Price: 120.5, Category: "jewelery"},
	})))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	col := strings.Index(lines[0], "PRICE")
	require.Positive(t, col)
	assert.Equal(t, col, strings.Index(lines[1], "$3"))
	assert.Equal(t, col, strings.Index(lines[2], "$120.5"))
	assert.Equal(t, strings.Index(lines[0], "TITLE"), strings.Index(lines[2], "Gold ring"))
}

func TestWritePanel_EmptyCart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, view.WritePanel(&buf, view.Panel(domain.CartEvent{Totals: domain.ComputeTotals(nil)})))
	assert.Equal(t, "Items: 0\nTotal: $0.00\n", buf.String())
}
