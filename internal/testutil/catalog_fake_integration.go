//go:build integration

package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// FakeCatalog — каталог в духе fakestoreapi: GET /products и GET /products/{id};
// на неизвестный id отвечает 200 с пустым телом.
type FakeCatalog struct {
	Server *httptest.Server

	mu       sync.RWMutex
	products []domain.Product
	hits     atomic.Int64
}

// StartFakeCatalog — поднимает сервер; закрывать через Close.
func StartFakeCatalog(products ...domain.Product) *FakeCatalog {
	fc := &FakeCatalog{products: products}
	fc.Server = httptest.NewServer(http.HandlerFunc(fc.serve))
	return fc
}

// BaseURL — адрес списка товаров.
func (fc *FakeCatalog) BaseURL() string { return fc.Server.URL + "/products" }

// Hits — число обращений к серверу.
func (fc *FakeCatalog) Hits() int64 { return fc.hits.Load() }

func (fc *FakeCatalog) Close() { fc.Server.Close() }

func (fc *FakeCatalog) serve(w http.ResponseWriter, r *http.Request) {
	fc.hits.Add(1)
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	fc.mu.RLock()
	defer fc.mu.RUnlock()

	rest := strings.TrimPrefix(r.URL.Path, "/products")
	if rest == "" || rest == "/" {
		_ = json.NewEncoder(w).Encode(fc.products)
		return
	}

	id, err := strconv.Atoi(strings.TrimPrefix(rest, "/"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	for _, p := range fc.products {
		if p.ID == id {
			_ = json.NewEncoder(w).Encode(p)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}
