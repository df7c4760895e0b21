package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem — позиция корзины: один товар с агрегированным количеством.
type LineItem struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
}

// NewLineItem — позиция из товара каталога с количеством 1.
func NewLineItem(p *Product) LineItem {
	return LineItem{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Image:    p.Image,
		Category: p.Category,
		Quantity: 1,
	}
}

// Subtotal — price*quantity без округления.
func (li LineItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(li.Price).Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Totals — итоги корзины: число единиц и сумма, округлённая до центов.
type Totals struct {
	TotalItemCount int             `json:"total_item_count"`
	TotalPrice     decimal.Decimal `json:"total_price"`
}

// ComputeTotals — чистое вычисление итогов по снимку корзины.
func ComputeTotals(items []LineItem) Totals {
	count := 0
	sum := decimal.Zero
	for _, li := range items {
		count += li.Quantity
		sum = sum.Add(li.Subtotal())
	}
	return Totals{TotalItemCount: count, TotalPrice: sum.Round(2)}
}

// CloneItems — копия последовательности позиций (снимок).
func CloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

// CartOp — тип мутации корзины.
type CartOp string

const (
	CartOpAdd    CartOp = "add"
	CartOpRemove CartOp = "remove"
	CartOpClear  CartOp = "clear"
	CartOpLoad   CartOp = "load"
)

// CartEvent — уведомление подписчиков после успешной мутации.
type CartEvent struct {
	Op         CartOp     `json:"op"`
	ProductID  int        `json:"product_id,omitempty"`
	Items      []LineItem `json:"items"`
	Totals     Totals     `json:"totals"`
	OccurredAt time.Time  `json:"occurred_at"`
}
