package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

var _ ports.ProductCache = (*ProductCache)(nil)

type entry struct {
	id        int
	product   *domain.Product
	expiresAt time.Time
}

// ProductCache — LRU-кэш карточек товаров с TTL (ttl <= 0 — без истечения).
type ProductCache struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	index map[int]*list.Element

	now func() time.Time
	mu  sync.Mutex
}

func NewProductCache(capacity int, ttl time.Duration) *ProductCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &ProductCache{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		index:    make(map[int]*list.Element),
		now:      time.Now,
	}
}

func (c *ProductCache) Get(_ context.Context, id int) (*domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	elem, ok := c.index[id]
	if !ok {
		metrics.ProductCacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.ProductCacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.ProductCacheSize.Set(float64(c.ll.Len()))
		return nil, false
	}
	// чтение не продлевает TTL
	c.ll.MoveToFront(elem)

	metrics.ProductCacheOps.WithLabelValues("hit").Inc()
	return cloneProduct(ent.product), true
}

func (c *ProductCache) Set(_ context.Context, product *domain.Product) error {
	if product == nil || product.ID <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if elem, ok := c.index[product.ID]; ok {
		ent := elem.Value.(*entry)
		ent.product = cloneProduct(product)
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        product.ID,
		product:   cloneProduct(product),
		expiresAt: c.expiryFrom(now),
	})
	c.index[product.ID] = elem
	metrics.ProductCacheSize.Set(float64(c.ll.Len()))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

func (c *ProductCache) WarmUp(ctx context.Context, products []domain.Product) error {
	for i := range products {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Set(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

// Len — текущее число записей (включая ещё не вычищенные просроченные).
func (c *ProductCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
