//go:build integration

package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/storefront/internal/cache/memory"
	"github.com/Gunvolt24/storefront/internal/catalog"
	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	memrepo "github.com/Gunvolt24/storefront/internal/repo/memory"
	pgrepo "github.com/Gunvolt24/storefront/internal/repo/postgres"
	"github.com/Gunvolt24/storefront/internal/testutil"
	rest "github.com/Gunvolt24/storefront/internal/transport/http"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/internal/view"
	"github.com/Gunvolt24/storefront/pkg/logger"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

type stack struct {
	store  *usecase.CartStore
	server *httptest.Server
}

// newStack — полный пайплайн: fake-каталог → клиент → сервис каталога → CartStore(слот) → роутер.
func newStack(t *testing.T, catalogURL string, slot ports.CartStorage, timeout time.Duration) *stack {
	t.Helper()

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	v := validate.NewProductValidator()
	client := catalog.NewClient(catalog.Options{BaseURL: catalogURL, Timeout: 2 * time.Second}, v, logg)
	catalogSvc := usecase.NewCatalogService(client, cachemem.NewProductCache(100, time.Minute), v, logg)

	store := usecase.NewCartStore(slot, catalogSvc, logg)
	binder := view.NewBinder()
	store.Subscribe(binder)
	store.Load(context.Background())

	h := rest.NewHandler(catalogSvc, store, binder, logg, timeout)
	ts := httptest.NewServer(rest.NewRouter(h, ""))
	t.Cleanup(ts.Close)

	return &stack{store: store, server: ts}
}

func doReq(t *testing.T, method, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, http.NoBody)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// 1) Корзина через HTTP сохраняется в Postgres и переживает «перезапуск»
func TestHTTP_CartPersistsInPostgres_TC(t *testing.T) {
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stop, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stop(context.Background()) }()

	fc := testutil.StartFakeCatalog(testutil.MakeProduct(1, 10.00), testutil.MakeProduct(2, 5.50))
	defer fc.Close()

	slotKey := "cart-" + testutil.UniqSuffix()
	s := newStack(t, fc.BaseURL(), pgrepo.NewCartSlot(pg.Pool, slotKey), 2*time.Second)

	for _, id := range []string{"1", "2", "1"} {
		resp, body := doReq(t, http.MethodPost, s.server.URL+"/api/cart/items/"+id)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	}

	resp, body := doReq(t, http.MethodGet, s.server.URL+"/api/cart")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var panel view.CartPanel
	require.NoError(t, json.Unmarshal(body, &panel))
	require.Equal(t, 3, panel.Count)
	require.Equal(t, "Total: $25.50", panel.Total)

	// новый экземпляр поверх того же слота
	restarted := newStack(t, fc.BaseURL(), pgrepo.NewCartSlot(pg.Pool, slotKey), 2*time.Second)
	require.Equal(t, s.store.Snapshot(), restarted.store.Snapshot())

	resp, _ = doReq(t, http.MethodDelete, restarted.server.URL+"/api/cart")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "0.00", restarted.store.Totals().TotalPrice.StringFixed(2))
}

// 2) Неизвестный товар: 404 и корзина без изменений
func TestHTTP_AddUnknownProduct_404_TC(t *testing.T) {
	fc := testutil.StartFakeCatalog(testutil.MakeProduct(1, 1))
	defer fc.Close()

	s := newStack(t, fc.BaseURL(), memrepo.NewCartSlot(), 2*time.Second)

	resp, body := doReq(t, http.MethodPost, s.server.URL+"/api/cart/items/77")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	require.Equal(t, "product not found", got["error"])
	require.Empty(t, s.store.Snapshot())
}

// 3) Каталог: trending, категории, детали
func TestHTTP_CatalogEndpoints_TC(t *testing.T) {
	p1 := testutil.MakeProduct(1, 1, testutil.WithCategory("jewelery"))
	p2 := testutil.MakeProduct(2, 2)
	p2.Rating.Rate = 4.9
	fc := testutil.StartFakeCatalog(p1, p2)
	defer fc.Close()

	s := newStack(t, fc.BaseURL(), memrepo.NewCartSlot(), 2*time.Second)

	resp, body := doReq(t, http.MethodGet, s.server.URL+"/api/products/trending?limit=1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cards []view.ProductCard
	require.NoError(t, json.Unmarshal(body, &cards))
	require.Len(t, cards, 1)
	require.Equal(t, 2, cards[0].ID)

	resp, body = doReq(t, http.MethodGet, s.server.URL+"/api/categories")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bar []view.CategoryButton
	require.NoError(t, json.Unmarshal(body, &bar))
	require.Equal(t, []view.CategoryButton{{Label: "All", Active: true}, {Label: "jewelery"}, {Label: "electronics"}}, bar)

	resp, body = doReq(t, http.MethodGet, s.server.URL+"/api/products/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var details view.ProductDetails
	require.NoError(t, json.Unmarshal(body, &details))
	require.Equal(t, p1.Title, details.Title)
}

// 4) /ping, /metrics, 404 и 405
func TestHTTP_Health_Metrics_404_405_TC(t *testing.T) {
	fc := testutil.StartFakeCatalog()
	defer fc.Close()
	s := newStack(t, fc.BaseURL(), memrepo.NewCartSlot(), 2*time.Second)

	resp, body := doReq(t, http.MethodGet, s.server.URL+"/ping")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "pong", string(body))

	resp, body = doReq(t, http.MethodGet, s.server.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, body)

	resp, body = doReq(t, http.MethodGet, s.server.URL+"/no/such/route")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	require.Equal(t, "route not found", got["error"])

	resp, _ = doReq(t, http.MethodPut, s.server.URL+"/api/cart")
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Allow"), "GET")
}

// 5) Медленный каталог и короткий таймаут обработчика → 504
func TestHTTP_SlowCatalog_Timeout_504_TC(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
		_ = json.NewEncoder(w).Encode(domain.Product{ID: 1, Title: "late", Price: 1})
	}))
	defer slow.Close()

	s := newStack(t, slow.URL+"/products", memrepo.NewCartSlot(), 20*time.Millisecond)

	resp, _ := doReq(t, http.MethodPost, s.server.URL+"/api/cart/items/1")
	require.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	require.Empty(t, s.store.Snapshot())
}
