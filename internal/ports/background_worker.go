package ports

import "context"

// BackgroundWorker — фоновый компонент приложения (консьюмер, публикатор).
// Run блокируется до отмены контекста; Close идемпотентен.
type BackgroundWorker interface {
	Run(ctx context.Context) error
	Close() error
}
