// Package cartcodec — сериализация корзины в слот хранилища и обратно.
// Формат слота: JSON-массив позиций. Бизнес-логики здесь нет.
package cartcodec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// Encode — корзина → JSON-массив (пустая корзина → "[]").
func Encode(items []domain.LineItem) ([]byte, error) {
	if items == nil {
		items = []domain.LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode cart: %w", err)
	}
	return raw, nil
}

// Decode — JSON-массив → корзина.
// Пустой слот и литерал null дают пустую корзину; любые повреждения → domain.ErrCorruptCart.
func Decode(raw []byte) ([]domain.LineItem, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []domain.LineItem{}, nil
	}

	var items []domain.LineItem
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptCart, err)
	}
	// после массива не должно быть данных
	if err := dec.Decode(new(json.RawMessage)); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", domain.ErrCorruptCart)
	}

	if err := validateItems(items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.LineItem{}
	}
	return items, nil
}

// validateItems — инварианты корзины: одна позиция на id, quantity >= 1, цена неотрицательна.
func validateItems(items []domain.LineItem) error {
	seen := make(map[int]struct{}, len(items))
	for i := range items {
		item := &items[i]
		if item.ID <= 0 {
			return fmt.Errorf("%w: items[%d].id должен быть положительным", domain.ErrCorruptCart, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: items[%d].quantity должен быть >= 1", domain.ErrCorruptCart, i)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: items[%d].price должен быть неотрицательным", domain.ErrCorruptCart, i)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: повтор id=%d", domain.ErrCorruptCart, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}
