package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/storefront/internal/catalog"
	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

const productsJSON = `[
 {"id":1,"title":"Fjallraven Backpack","price":109.95,"description":"d","category":"men's clothing","image":"https://img/1.jpg","rating":{"rate":3.9,"count":120}},
 {"id":2,"title":"Mens Casual T-Shirt","price":22.3,"description":"d","category":"men's clothing","image":"https://img/2.jpg","rating":{"rate":4.1,"count":259}},
 {"id":0,"title":"broken","price":1}
]`

func newServer(t *testing.T, h http.HandlerFunc) *catalog.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return catalog.NewClient(catalog.Options{BaseURL: srv.URL + "/products/", Timeout: 2 * time.Second},
		validate.NewProductValidator(), ports.NopLogger{})
}

func TestListProducts_SkipsInvalid(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		_, _ = w.Write([]byte(productsJSON))
	})

	got, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 1, got[0].ID)
	require.Equal(t, 4.1, got[1].Rating.Rate)
}

func TestGetProduct_OK(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/2", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":2,"title":"Mens Casual T-Shirt","price":22.3,"category":"men's clothing","image":"https://img/2.jpg"}`))
	})

	p, err := c.GetProduct(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 22.3, p.Price)
}

func TestGetProduct_NotFoundVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http_404", http.StatusNotFound, `{"error":"nope"}`},
		{"empty_200", http.StatusOK, ``},
		{"null_200", http.StatusOK, `null`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.GetProduct(context.Background(), 999)
			require.ErrorIs(t, err, domain.ErrFetch)
			require.ErrorIs(t, err, domain.ErrProductNotFound)

			var fe *domain.FetchError
			require.True(t, errors.As(err, &fe))
			require.Equal(t, 999, fe.ProductID)
		})
	}
}

func TestGetProduct_NonPositiveIDSkipsNetwork(t *testing.T) {
	var calls int32
	c := newServer(t, func(http.ResponseWriter, *http.Request) { atomic.AddInt32(&calls, 1) })

	_, err := c.GetProduct(context.Background(), 0)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	require.Zero(t, atomic.LoadInt32(&calls))
}

func TestGetProduct_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantErr    error
	}{
		{"server_error", http.StatusInternalServerError, `oops`, 500, nil},
		{"bad_json", http.StatusOK, `{"id":`, 200, nil},
		{"invalid_product", http.StatusOK, `{"id":3,"title":"","price":1}`, 200, validate.ErrInvalidProduct},
		{"id_mismatch", http.StatusOK, `{"id":4,"title":"x","price":1}`, 200, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.GetProduct(context.Background(), 3)
			require.ErrorIs(t, err, domain.ErrFetch)
			require.NotErrorIs(t, err, domain.ErrProductNotFound)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			var fe *domain.FetchError
			require.True(t, errors.As(err, &fe))
			require.Equal(t, tt.wantStatus, fe.Status)
		})
	}
}

func TestGetProduct_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := catalog.NewClient(catalog.Options{BaseURL: url, Timeout: time.Second}, validate.NewProductValidator(), ports.NopLogger{})
	_, err := c.GetProduct(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrFetch)

	var fe *domain.FetchError
	require.True(t, errors.As(err, &fe))
	require.Zero(t, fe.Status)
}

func TestGetProduct_RateLimitRespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"title":"x","price":1}`))
	}))
	t.Cleanup(srv.Close)

	c := catalog.NewClient(catalog.Options{BaseURL: srv.URL, RPS: 0.001, Burst: 1},
		validate.NewProductValidator(), ports.NopLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// первый запрос расходует burst, второй не дождётся токена до дедлайна
	_, err := c.GetProduct(ctx, 1)
	require.NoError(t, err)
	_, err = c.GetProduct(ctx, 1)
	require.ErrorIs(t, err, domain.ErrFetch)
	require.Contains(t, err.Error(), "rate limit")
}
