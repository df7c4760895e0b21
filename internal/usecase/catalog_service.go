package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/telemetry"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

// Проверка, что CatalogService удовлетворяет интерфейсам.
var (
	_ ports.CatalogReadService = (*CatalogService)(nil)
	_ ports.ProductFetcher     = (*CatalogService)(nil)
)

const (
	// DefaultTrendingCount — размер витрины «Trending now».
	DefaultTrendingCount = 6
	// AllCategories — псевдокатегория, совпадающая с любым товаром.
	AllCategories = "All"
)

// CatalogService — чтение каталога поверх удалённого клиента и кэша карточек.
type CatalogService struct {
	client    ports.CatalogClient    // удалённый каталог
	cache     ports.ProductCache     // кэш карточек
	validator ports.ProductValidator // валидатор обновлений из Kafka
	log       ports.Logger

	group singleflight.Group // один запрос на id, сколько бы читателей ни ждали
}

// NewCatalogService — DI-конструктор.
func NewCatalogService(
	client ports.CatalogClient,
	cache ports.ProductCache,
	validator ports.ProductValidator,
	log ports.Logger,
) *CatalogService {
	return &CatalogService{
		client:    client,
		cache:     cache,
		validator: validator,
		log:       log,
	}
}

// GetProduct — карточка товара: сначала кэш, при промахе — каталог с записью в кэш.
// Параллельные промахи по одному id сводятся к одному запросу.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	if p, found := s.cache.Get(ctx, id); found {
		return p, nil
	}

	v, err := s.do(ctx, "product:"+strconv.Itoa(id), func(fetchCtx context.Context) (any, error) {
		fetchCtx, span := telemetry.StartSpan(fetchCtx, "catalog.fetch_product", attribute.Int("product.id", id))
		defer span.End()

		start := time.Now()
		p, err := s.client.GetProduct(fetchCtx, id)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "fetch failed")
			return nil, err
		}
		if setErr := s.cache.Set(fetchCtx, p); setErr != nil {
			s.log.Warnf(ctx, "cache.Set failed product_id=%d err=%v", id, setErr)
		}
		s.log.Infof(ctx, "catalog fetch product_id=%d took=%s", id, time.Since(start))
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	// результат общий для всех ожидающих — отдаём копию
	p := *v.(*domain.Product)
	return &p, nil
}

// Product — то же, что GetProduct; имя для слоя представления.
func (s *CatalogService) Product(ctx context.Context, id int) (*domain.Product, error) {
	return s.GetProduct(ctx, id)
}

// Products — полный список каталога; заодно прогревает кэш карточек.
func (s *CatalogService) Products(ctx context.Context) ([]domain.Product, error) {
	v, err := s.do(ctx, "list", func(fetchCtx context.Context) (any, error) {
		list, err := s.client.ListProducts(fetchCtx)
		if err != nil {
			return nil, err
		}
		if warmErr := s.cache.WarmUp(fetchCtx, list); warmErr != nil {
			s.log.Warnf(ctx, "cache.WarmUp failed err=%v", warmErr)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	list := v.([]domain.Product)
	return append([]domain.Product(nil), list...), nil
}

// ByCategory — товары категории в порядке каталога; "" и "All" — весь каталог.
func (s *CatalogService) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	list, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByCategory(list, category), nil
}

// Trending — n товаров с наибольшим rating.rate; при равенстве сохраняется порядок каталога.
func (s *CatalogService) Trending(ctx context.Context, n int) ([]domain.Product, error) {
	list, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	return TopRated(list, n), nil
}

// Categories — различные категории в порядке первого появления.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	list, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	return DistinctCategories(list), nil
}

// ApplyProductUpdate — обновление карточки из Kafka (raw JSON).
// Невалидные сообщения возвращают ошибку, оборачивающую validate.ErrInvalidProduct.
func (s *CatalogService) ApplyProductUpdate(ctx context.Context, raw []byte) error {
	p, err := validate.ProductFromJSON(ctx, s.validator, raw)
	if err != nil {
		s.log.Warnf(ctx, "product update rejected err=%v", err)
		return err
	}
	if err := s.cache.Set(ctx, p); err != nil {
		s.log.Errorf(ctx, "cache.Set failed product_id=%d err=%v", p.ID, err)
		return fmt.Errorf("cache product %d: %w", p.ID, err)
	}
	s.log.Infof(ctx, "product updated id=%d", p.ID)
	return nil
}

// ------вспомогательные функции------

// do — singleflight с учётом контекста: общий запрос не отменяется уходом первого читателя,
// а каждый ожидающий выходит по своему ctx.
func (s *CatalogService) do(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) { return fn(fetchCtx) })

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// FilterByCategory — фильтр по точному совпадению категории; "" и "All" пропускают всё.
func FilterByCategory(list []domain.Product, category string) []domain.Product {
	if category == "" || strings.EqualFold(category, AllCategories) {
		return append([]domain.Product(nil), list...)
	}
	out := make([]domain.Product, 0, len(list))
	for _, p := range list {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// TopRated — стабильная сортировка по убыванию rating.rate и первые n (n <= 0 — DefaultTrendingCount).
func TopRated(list []domain.Product, n int) []domain.Product {
	if n <= 0 {
		n = DefaultTrendingCount
	}
	sorted := append([]domain.Product(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating.Rate > sorted[j].Rating.Rate
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// DistinctCategories — уникальные категории в порядке первого появления.
func DistinctCategories(list []domain.Product) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0)
	for _, p := range list {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
