package ports

import "context"

// CartStorage — именованный слот key-value хранилища с сериализованной корзиной.
// Load возвращает (nil, nil), если слот пуст. Save перезаписывает слот целиком,
// частичная запись не должна быть видна читателю.
type CartStorage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, raw []byte) error
}
