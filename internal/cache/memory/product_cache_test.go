package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
)

func newProduct(id int) *domain.Product {
	return &domain.Product{ID: id, Title: "p", Price: float64(id)}
}

// fakeClock — управляемые часы для проверок TTL без sleep.
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestSetGet_HitMiss(t *testing.T) {
	c := NewProductCache(2, 5*time.Minute)
	ctx := context.Background()

	// miss
	if _, ok := c.Get(ctx, 1); ok {
		t.Fatalf("expected miss before Set")
	}

	// hit после Set
	_ = c.Set(ctx, newProduct(1))
	got, ok := c.Get(ctx, 1)
	if !ok || got.ID != 1 {
		t.Fatalf("expected hit for id=1")
	}
}

func TestTTL_Expiry(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := NewProductCache(2, time.Minute)
	c.now = clock.now
	ctx := context.Background()

	_ = c.Set(ctx, newProduct(7))
	clock.advance(30 * time.Second)
	if _, ok := c.Get(ctx, 7); !ok {
		t.Fatalf("expected hit before TTL")
	}
	// чтение не продлевает TTL
	clock.advance(31 * time.Second)
	if _, ok := c.Get(ctx, 7); ok {
		t.Fatalf("expected miss after TTL expires")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry must be removed, len=%d", c.Len())
	}
}

func TestSet_RefreshesTTL(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := NewProductCache(2, time.Minute)
	c.now = clock.now
	ctx := context.Background()

	_ = c.Set(ctx, newProduct(1))
	clock.advance(50 * time.Second)
	_ = c.Set(ctx, &domain.Product{ID: 1, Title: "updated"})
	clock.advance(50 * time.Second)

	got, ok := c.Get(ctx, 1)
	if !ok || got.Title != "updated" {
		t.Fatalf("expected refreshed entry, got %+v ok=%v", got, ok)
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewProductCache(2, 0) // 0 = без TTL
	ctx := context.Background()

	_ = c.Set(ctx, newProduct(1))
	_ = c.Set(ctx, newProduct(2))
	// 1 делаем «свежим»
	if _, ok := c.Get(ctx, 1); !ok {
		t.Fatalf("expected hit for 1")
	}
	// Добавляем 3 — вытеснит 2
	_ = c.Set(ctx, newProduct(3))

	if _, ok := c.Get(ctx, 2); ok {
		t.Fatalf("expected 2 to be evicted")
	}
	if _, ok := c.Get(ctx, 1); !ok || c.Len() != 2 {
		t.Fatalf("expected 1 & 3 to stay in cache")
	}
}

func TestSet_IgnoresInvalid(t *testing.T) {
	c := NewProductCache(2, 0)
	ctx := context.Background()

	_ = c.Set(ctx, nil)
	_ = c.Set(ctx, &domain.Product{ID: 0})
	if c.Len() != 0 {
		t.Fatalf("nil/zero-id products must not be cached")
	}
}

func TestWarmUp_CanceledContext(t *testing.T) {
	c := NewProductCache(10, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.WarmUp(ctx, []domain.Product{*newProduct(1)}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestCloneImmutability(t *testing.T) {
	c := NewProductCache(1, 0)
	ctx := context.Background()
	_ = c.Set(ctx, newProduct(9))

	// меняем то, что вернул Get — не должно влиять на кэш
	p1, _ := c.Get(ctx, 9)
	p1.Title = "changed"

	p2, _ := c.Get(ctx, 9)
	if p2.Title == "changed" {
		t.Fatalf("cache should return clones, not pointers to internal value")
	}
}
