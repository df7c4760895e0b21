package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/internal/view"
	"github.com/Gunvolt24/storefront/pkg/httpx"
)

const maxTrendingLimit = 20

// CartPanelSource — последняя отрисованная панель корзины (view.Binder).
type CartPanelSource interface {
	Current() view.CartPanel
	Rendered() bool
}

// Handler — HTTP-обработчики витрины и корзины.
type Handler struct {
	catalog ports.CatalogReadService
	cart    ports.CartService
	panel   CartPanelSource
	log     ports.Logger
	timeout time.Duration // таймаут на обработку одного запроса; 0 — без таймаута
}

func NewHandler(
	catalog ports.CatalogReadService,
	cart ports.CartService,
	panel CartPanelSource,
	log ports.Logger,
	timeout time.Duration,
) *Handler {
	return &Handler{catalog: catalog, cart: cart, panel: panel, log: log, timeout: timeout}
}

// NewRouter — gin-роутер; otelServiceName != "" включает otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log, "/metrics", "/ping", "/ready"))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/ready", h.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/products", h.listProducts)
	api.GET("/products/trending", h.trending)
	api.GET("/products/:id", h.productDetails)
	api.GET("/categories", h.categories)

	api.GET("/cart", h.getCart)
	api.POST("/cart/items/:id", h.addItem)
	api.DELETE("/cart/items/:id", h.removeItem)
	api.DELETE("/cart", h.clearCart)

	return r
}

func (h *Handler) listProducts(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	products, err := h.catalog.ByCategory(ctx, c.Query("category"))
	if err != nil {
		h.fail(c, err, "list products")
		return
	}
	c.JSON(http.StatusOK, view.Cards(products))
}

func (h *Handler) trending(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	limit := httpx.ParseLimit(c, usecase.DefaultTrendingCount, maxTrendingLimit)
	products, err := h.catalog.Trending(ctx, limit)
	if err != nil {
		h.fail(c, err, "trending")
		return
	}
	c.JSON(http.StatusOK, view.Cards(products))
}

func (h *Handler) categories(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	cats, err := h.catalog.Categories(ctx)
	if err != nil {
		h.fail(c, err, "categories")
		return
	}
	c.JSON(http.StatusOK, view.CategoryBar(cats, c.Query("active")))
}

func (h *Handler) productDetails(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	p, err := h.catalog.Product(ctx, id)
	if err != nil {
		h.fail(c, err, "product details")
		return
	}
	c.JSON(http.StatusOK, view.Details(*p))
}

// ready — 503, пока корзина не загружена из слота и панель не отрисована.
func (h *Handler) ready(c *gin.Context) {
	if !h.panel.Rendered() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *Handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.panel.Current())
}

func (h *Handler) addItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.cart.AddItem(ctx, id); err != nil {
		h.fail(c, err, "add to cart")
		return
	}
	c.JSON(http.StatusOK, h.panel.Current())
}

func (h *Handler) removeItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.cart.RemoveItem(c.Request.Context(), id); err != nil {
		h.fail(c, err, "remove from cart")
		return
	}
	c.JSON(http.StatusOK, h.panel.Current())
}

func (h *Handler) clearCart(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context()); err != nil {
		h.fail(c, err, "clear cart")
		return
	}
	c.JSON(http.StatusOK, h.panel.Current())
}

// ------вспомогательные функции------

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// parseID — положительный id из пути; иначе 400.
func parseID(c *gin.Context) (int, bool) {
	id, err := httpx.PositiveIntParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return 0, false
	}
	return id, true
}

// fail — отображение ошибок на HTTP-статусы.
func (h *Handler) fail(c *gin.Context, err error, action string) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, context.DeadlineExceeded):
		h.log.Warnf(ctx, "%s timed out: %v", action, err)
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "catalog timeout"})
	case errors.Is(err, domain.ErrFetch):
		h.log.Warnf(ctx, "%s failed: %v", action, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
	default:
		h.log.Errorf(ctx, "%s failed: %v", action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
