package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/storefront/internal/ports"
)

// RequestLogger пишет одну строку на запрос после его обработки.
// Маршруты из skip (по шаблону gin, например "/metrics") не логируются.
// 5xx и запросы с ошибками в c.Errors идут уровнем Warn.
func RequestLogger(log ports.Logger, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, ok := skipped[route]; ok {
			return
		}
		if route == "" {
			route = c.Request.URL.Path
		}

		status := c.Writer.Status()
		errs := c.Errors.ByType(gin.ErrorTypePrivate).String()

		logf := log.Infof
		if status >= http.StatusInternalServerError || errs != "" {
			logf = log.Warnf
		}
		logf(c.Request.Context(),
			"http %s %s status=%d took=%s bytes=%d ip=%s errors=%q",
			c.Request.Method, route, status, time.Since(start), c.Writer.Size(), c.ClientIP(), errs,
		)
	}
}
