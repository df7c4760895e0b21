package app

import (
	"context"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

type productLister interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

// warmUpWorker — однократная загрузка списка каталога в кэш после старта.
type warmUpWorker struct {
	catalog productLister
	timeout time.Duration
	log     ports.Logger
}

func newWarmUpWorker(catalog productLister, timeout time.Duration, log ports.Logger) *warmUpWorker {
	return &warmUpWorker{catalog: catalog, timeout: timeout, log: log}
}

// Run — ошибка прогрева не фатальна: карточки подтянутся по запросу.
func (w *warmUpWorker) Run(ctx context.Context) error {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	start := time.Now()
	list, err := w.catalog.Products(ctx)
	if err != nil {
		w.log.Warnf(ctx, "warm-up cache failed: %v", err)
		return nil
	}
	w.log.Infof(ctx, "warm-up cache products=%d took=%s", len(list), time.Since(start))
	return nil
}

func (w *warmUpWorker) Close() error { return nil }
