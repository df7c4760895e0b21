package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Gunvolt24/storefront/internal/cartcodec"
	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

// Проверка, что CartStore удовлетворяет интерфейсу CartService.
var _ ports.CartService = (*CartStore)(nil)

const defaultPersistTimeout = 5 * time.Second

// CartStore — авторитетная последовательность позиций корзины.
// Единственный писатель корзины; каждая мутация сохраняет корзину целиком
// и уведомляет подписчиков. Подписчики не должны мутировать корзину из CartChanged.
type CartStore struct {
	storage ports.CartStorage
	fetcher ports.ProductFetcher
	log     ports.Logger

	persistTimeout time.Duration
	now            func() time.Time

	mu    sync.Mutex
	items []domain.LineItem

	// notifyMu держится от фиксации мутации до конца рассылки: события приходят в порядке мутаций
	notifyMu  sync.Mutex
	lmu       sync.RWMutex
	listeners []listenerEntry
	nextID    uint64
}

type listenerEntry struct {
	id uint64
	l  ports.CartListener
}

// NewCartStore — DI-конструктор. Корзина пуста до вызова Load.
func NewCartStore(storage ports.CartStorage, fetcher ports.ProductFetcher, log ports.Logger) *CartStore {
	return &CartStore{
		storage:        storage,
		fetcher:        fetcher,
		log:            log,
		persistTimeout: defaultPersistTimeout,
		now:            time.Now,
		items:          []domain.LineItem{},
	}
}

// Load — однократная загрузка корзины из слота при старте.
// Отсутствие данных, ошибка чтения и повреждённые данные дают пустую корзину; это не фатально.
func (s *CartStore) Load(ctx context.Context) {
	items := s.readSlot(ctx)

	s.mu.Lock()
	s.items = items
	ev := s.eventLocked(domain.CartOpLoad, 0)
	s.notifyMu.Lock()
	s.mu.Unlock()

	s.log.Infof(ctx, "cart loaded lines=%d items=%d", len(ev.Items), ev.Totals.TotalItemCount)
	s.broadcast(ctx, ev)
}

// AddItem — merge-by-id: существующая позиция получает +1 без сети,
// новая запрашивается у каталога и добавляется в конец с quantity=1.
// При ошибке каталога возвращает *domain.FetchError, корзина не меняется.
func (s *CartStore) AddItem(ctx context.Context, productID int) error {
	s.mu.Lock()
	if s.incrementLocked(productID) {
		s.commitAndNotify(ctx, domain.CartOpAdd, productID)
		return nil
	}
	s.mu.Unlock()

	product, err := s.fetcher.GetProduct(ctx, productID)
	if err != nil {
		metrics.CartOps.WithLabelValues(string(domain.CartOpAdd), "fetch_error").Inc()
		s.log.Warnf(ctx, "cart add failed product_id=%d err=%v", productID, err)

		var fe *domain.FetchError
		if !errors.As(err, &fe) {
			err = &domain.FetchError{ProductID: productID, Err: err}
		}
		return err
	}

	item := domain.NewLineItem(product)
	item.ID = productID

	s.mu.Lock()
	// пока шёл запрос, позицию мог добавить параллельный AddItem
	if !s.incrementLocked(productID) {
		s.items = append(s.items, item)
	}
	s.commitAndNotify(ctx, domain.CartOpAdd, productID)
	return nil
}

// RemoveItem — удаляет позицию по id; отсутствие позиции не ошибка. Корзина сохраняется в любом случае.
func (s *CartStore) RemoveItem(ctx context.Context, productID int) error {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	s.commitAndNotify(ctx, domain.CartOpRemove, productID)
	return nil
}

// Clear — безусловно очищает корзину.
func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.items = []domain.LineItem{}
	s.commitAndNotify(ctx, domain.CartOpClear, 0)
	return nil
}

// Snapshot — копия текущей последовательности; без сети и без сохранения.
func (s *CartStore) Snapshot() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneItems(s.items)
}

// Totals — число единиц и сумма, округлённая до 2 знаков.
func (s *CartStore) Totals() domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ComputeTotals(s.items)
}

// Subscribe — регистрирует подписчика; возвращает функцию отписки.
func (s *CartStore) Subscribe(l ports.CartListener) (unsubscribe func()) {
	s.lmu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: id, l: l})
	s.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lmu.Lock()
			defer s.lmu.Unlock()
			for i, e := range s.listeners {
				if e.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// ------вспомогательные функции------

// incrementLocked — +1 к существующей позиции; false, если позиции нет.
func (s *CartStore) incrementLocked(productID int) bool {
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity++
			return true
		}
	}
	return false
}

// commitAndNotify — вызывается с захваченным s.mu; сохраняет корзину, отпускает s.mu и рассылает событие.
func (s *CartStore) commitAndNotify(ctx context.Context, op domain.CartOp, productID int) {
	ev := s.eventLocked(op, productID)
	s.persistLocked(ctx, ev.Items)
	metrics.CartOps.WithLabelValues(string(op), "ok").Inc()

	s.notifyMu.Lock()
	s.mu.Unlock()
	s.broadcast(ctx, ev)
}

func (s *CartStore) eventLocked(op domain.CartOp, productID int) domain.CartEvent {
	items := domain.CloneItems(s.items)
	totals := domain.ComputeTotals(items)

	metrics.CartLines.Set(float64(len(items)))
	metrics.CartItems.Set(float64(totals.TotalItemCount))

	return domain.CartEvent{
		Op:         op,
		ProductID:  productID,
		Items:      items,
		Totals:     totals,
		OccurredAt: s.now().UTC(),
	}
}

// persistLocked — запись слота. Ошибка не возвращается: корзина в памяти остаётся верной,
// теряется только долговечность. Отмена запроса не прерывает запись.
func (s *CartStore) persistLocked(ctx context.Context, items []domain.LineItem) {
	raw, err := cartcodec.Encode(items)
	if err != nil {
		metrics.CartPersistFailures.WithLabelValues("save").Inc()
		s.log.Errorf(ctx, "cart encode failed: %v", err)
		return
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.persistTimeout)
	defer cancel()
	if err := s.storage.Save(saveCtx, raw); err != nil {
		metrics.CartPersistFailures.WithLabelValues("save").Inc()
		s.log.Warnf(ctx, "cart save failed (in-memory cart kept): %v", err)
	}
}

func (s *CartStore) readSlot(ctx context.Context) []domain.LineItem {
	raw, err := s.storage.Load(ctx)
	if err != nil {
		metrics.CartPersistFailures.WithLabelValues("load").Inc()
		s.log.Warnf(ctx, "cart load failed, starting empty: %v", err)
		return []domain.LineItem{}
	}
	items, err := cartcodec.Decode(raw)
	if err != nil {
		metrics.CartPersistFailures.WithLabelValues("decode").Inc()
		s.log.Warnf(ctx, "cart slot is corrupt, starting empty: %v", err)
		return []domain.LineItem{}
	}
	return items
}

// broadcast — вызывается с захваченным notifyMu и отпускает его.
func (s *CartStore) broadcast(ctx context.Context, ev domain.CartEvent) {
	defer s.notifyMu.Unlock()

	s.lmu.RLock()
	listeners := make([]ports.CartListener, 0, len(s.listeners))
	for _, e := range s.listeners {
		listeners = append(listeners, e.l)
	}
	s.lmu.RUnlock()

	for _, l := range listeners {
		l.CartChanged(ctx, ev)
	}
}
