package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

var _ ports.CartStorage = (*CartSlot)(nil)

// CartSlot — слот корзины в файле; читатель никогда не видит полузаписанный файл.
type CartSlot struct {
	path string
}

// NewCartSlot — конструктор; каталог создаётся при первой записи.
func NewCartSlot(path string) *CartSlot { return &CartSlot{path: path} }

// Path — путь к файлу слота.
func (s *CartSlot) Path() string { return s.path }

// Load — содержимое файла; отсутствующий файл — пустой слот.
func (s *CartSlot) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrPersistence, s.path, err)
	}
	return raw, nil
}

// Save — перезаписывает слот через atomic.WriteFile (временный файл + замена).
func (s *CartSlot) Save(ctx context.Context, raw []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", domain.ErrPersistence, dir, err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrPersistence, s.path, err)
	}
	return nil
}
