// Package catalog — HTTP-клиент удалённого каталога товаров.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

// Проверка, что Client удовлетворяет интерфейсу CatalogClient.
var _ ports.CatalogClient = (*Client)(nil)

const (
	DefaultBaseURL = "https://fakestoreapi.com/products"
	maxBodyBytes   = 4 << 20
)

// Options — параметры клиента.
type Options struct {
	BaseURL   string
	Timeout   time.Duration // 0 — без таймаута
	RPS       float64       // <= 0 — без ограничения частоты
	Burst     int
	Transport http.RoundTripper // nil — http.DefaultTransport
}

// Client — клиент каталога: GET {base} и GET {base}/{id}.
type Client struct {
	baseURL   string
	http      *http.Client
	limiter   *rate.Limiter
	validator ports.ProductValidator
	log       ports.Logger
}

// NewClient — конструктор; транспорт оборачивается otelhttp.
func NewClient(opts Options, validator ports.ProductValidator, log ports.Logger) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		limiter:   limiter,
		validator: validator,
		log:       log,
	}
}

// ListProducts — весь каталог. Невалидные карточки пропускаются с предупреждением.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	start := time.Now()
	defer func() { metrics.CatalogFetchDuration.WithLabelValues("list").Observe(time.Since(start).Seconds()) }()

	status, body, err := c.get(ctx, c.baseURL)
	if err != nil {
		metrics.CatalogFetches.WithLabelValues("list", "error").Inc()
		return nil, &domain.FetchError{Status: status, Err: err}
	}

	var raw []domain.Product
	if err := json.Unmarshal(body, &raw); err != nil {
		metrics.CatalogFetches.WithLabelValues("list", "error").Inc()
		return nil, &domain.FetchError{Status: status, Err: fmt.Errorf("decode products: %w", err)}
	}

	products := make([]domain.Product, 0, len(raw))
	for i := range raw {
		if vErr := c.validator.Validate(ctx, &raw[i]); vErr != nil {
			c.log.Warnf(ctx, "catalog: skip product index=%d id=%d: %v", i, raw[i].ID, vErr)
			continue
		}
		products = append(products, raw[i])
	}

	metrics.CatalogFetches.WithLabelValues("list", "ok").Inc()
	return products, nil
}

// GetProduct — карточка по id. Пустой ответ, null и 404 — ErrProductNotFound.
func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	if id <= 0 {
		metrics.CatalogFetches.WithLabelValues("product", "not_found").Inc()
		return nil, &domain.FetchError{ProductID: id, Err: domain.ErrProductNotFound}
	}

	start := time.Now()
	defer func() { metrics.CatalogFetchDuration.WithLabelValues("product").Observe(time.Since(start).Seconds()) }()

	status, body, err := c.get(ctx, c.baseURL+"/"+strconv.Itoa(id))
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrProductNotFound) {
			result = "not_found"
		}
		metrics.CatalogFetches.WithLabelValues("product", result).Inc()
		return nil, &domain.FetchError{ProductID: id, Status: status, Err: err}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		metrics.CatalogFetches.WithLabelValues("product", "not_found").Inc()
		return nil, &domain.FetchError{ProductID: id, Status: status, Err: domain.ErrProductNotFound}
	}

	var product domain.Product
	if err := json.Unmarshal(trimmed, &product); err != nil {
		metrics.CatalogFetches.WithLabelValues("product", "error").Inc()
		return nil, &domain.FetchError{ProductID: id, Status: status, Err: fmt.Errorf("decode product: %w", err)}
	}
	if err := c.validator.Validate(ctx, &product); err != nil {
		metrics.CatalogFetches.WithLabelValues("product", "error").Inc()
		return nil, &domain.FetchError{ProductID: id, Status: status, Err: err}
	}
	if product.ID != id {
		metrics.CatalogFetches.WithLabelValues("product", "error").Inc()
		return nil, &domain.FetchError{ProductID: id, Status: status, Err: fmt.Errorf("catalog returned id %d", product.ID)}
	}

	metrics.CatalogFetches.WithLabelValues("product", "ok").Inc()
	return &product, nil
}

// get — GET с ограничением частоты; возвращает статус и тело только для 2xx.
func (c *Client) get(ctx context.Context, url string) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return resp.StatusCode, nil, domain.ErrProductNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return resp.StatusCode, nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.StatusCode, body, nil
}
