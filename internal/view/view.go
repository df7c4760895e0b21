// Package view — модели представления витрины: карточки, панель категорий,
// детали товара и панель корзины. Чистые функции поверх доменных типов.
package view

import (
	"fmt"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Gunvolt24/storefront/internal/domain"
)

const (
	CardTitleLimit = 40
	LineTitleLimit = 25
	AllCategories  = "All"
	ellipsis       = "..."
)

// ProductCard — карточка товара в сетке.
type ProductCard struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	CategoryLabel string `json:"category_label"`
	Image         string `json:"image"`
	Price         string `json:"price"`
	DetailsURL    string `json:"details_url"`
	AddURL        string `json:"add_url"`
}

// CategoryButton — кнопка фильтра; активна ровно одна.
type CategoryButton struct {
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// ProductDetails — полная карточка (модальное окно).
type ProductDetails struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Image       string        `json:"image"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Price       string        `json:"price"`
	Rating      domain.Rating `json:"rating"`
	AddURL      string        `json:"add_url"`
}

// CartLine — строка панели корзины.
type CartLine struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	RemoveURL string `json:"remove_url"`
}

// CartPanel — панель корзины: строки, счётчик единиц и итог.
type CartPanel struct {
	Lines []CartLine `json:"lines"`
	Count int        `json:"count"`
	Total string     `json:"total"`
}

var titleCaser = cases.Title(language.English)

// Cards — карточки в порядке каталога.
func Cards(products []domain.Product) []ProductCard {
	out := make([]ProductCard, 0, len(products))
	for _, p := range products {
		out = append(out, ProductCard{
			ID:            p.ID,
			Title:         Truncate(p.Title, CardTitleLimit),
			Category:      p.Category,
			CategoryLabel: titleCaser.String(p.Category),
			Image:         p.Image,
			Price:         Price(p.Price),
			DetailsURL:    productURL(p.ID),
			AddURL:        cartItemURL(p.ID),
		})
	}
	return out
}

// CategoryBar — "All" и далее категории в переданном порядке.
// Неизвестная или пустая активная категория означает "All".
func CategoryBar(categories []string, active string) []CategoryButton {
	known := active != "" && active != AllCategories
	if known {
		known = false
		for _, c := range categories {
			if c == active {
				known = true
				break
			}
		}
	}

	out := make([]CategoryButton, 0, len(categories)+1)
	out = append(out, CategoryButton{Label: AllCategories, Active: !known})
	for _, c := range categories {
		if c == AllCategories {
			continue
		}
		out = append(out, CategoryButton{Label: c, Active: known && c == active})
	}
	return out
}

func Details(p domain.Product) ProductDetails {
	return ProductDetails{
		ID:          p.ID,
		Title:       p.Title,
		Image:       p.Image,
		Description: p.Description,
		Category:    p.Category,
		Price:       Price(p.Price),
		Rating:      p.Rating,
		AddURL:      cartItemURL(p.ID),
	}
}

// Panel — панель корзины по событию CartStore.
func Panel(ev domain.CartEvent) CartPanel {
	lines := make([]CartLine, 0, len(ev.Items))
	for _, li := range ev.Items {
		lines = append(lines, CartLine{
			ID:        li.ID,
			Title:     Truncate(li.Title, LineTitleLimit),
			Text:      fmt.Sprintf("%d x %s", li.Quantity, Price(li.Price)),
			RemoveURL: cartItemURL(li.ID),
		})
	}
	return CartPanel{
		Lines: lines,
		Count: ev.Totals.TotalItemCount,
		Total: "Total: $" + ev.Totals.TotalPrice.StringFixed(2),
	}
}

// Truncate — не больше limit рун и "..." в конце, как в карточках витрины.
// Многоточие добавляется всегда, даже если заголовок короче лимита.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) > limit {
		r = r[:limit]
	}
	return string(r) + ellipsis
}

// Price — цена как в каталоге: без лишних нулей (10 → "$10", 5.5 → "$5.5").
func Price(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}

func productURL(id int) string  { return "/api/products/" + strconv.Itoa(id) }
func cartItemURL(id int) string { return "/api/cart/items/" + strconv.Itoa(id) }
