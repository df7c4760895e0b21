package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch — сбой запроса к каталогу (сеть или не-2xx ответ).
	ErrFetch = errors.New("catalog fetch failed")
	// ErrProductNotFound — товара с таким id в каталоге нет.
	ErrProductNotFound = errors.New("product not found")
	// ErrPersistence — сбой чтения/записи слота корзины.
	ErrPersistence = errors.New("cart persistence failed")
	// ErrCorruptCart — содержимое слота не разбирается как корзина.
	ErrCorruptCart = errors.New("corrupt cart data")
)

// FetchError — ошибка получения товара; всегда совместима с ErrFetch через errors.Is.
type FetchError struct {
	ProductID int // 0 — запрос списка
	Status    int // HTTP-статус, 0 если ответа не было
	Err       error
}

func (e *FetchError) Error() string {
	target := "products"
	if e.ProductID > 0 {
		target = fmt.Sprintf("product %d", e.ProductID)
	}
	if e.Status > 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", target, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", target, e.Err)
}

func (e *FetchError) Unwrap() []error { return []error{ErrFetch, e.Err} }

// NotFound — true, если причина ошибки в отсутствии товара.
func (e *FetchError) NotFound() bool { return errors.Is(e.Err, ErrProductNotFound) }
