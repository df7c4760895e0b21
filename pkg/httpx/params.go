package httpx

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ErrInvalidParam — параметр пути или запроса не прошёл разбор.
var ErrInvalidParam = errors.New("invalid parameter")

// Clamp — v в диапазоне [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// ParseLimit — limit из query с дефолтом, в границах [1, maxLimit].
// Нечисловое значение игнорируется.
func ParseLimit(c *gin.Context, defaultLimit, maxLimit int) int {
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		return Clamp(v, 1, maxLimit)
	}
	return Clamp(defaultLimit, 1, maxLimit)
}

// PositiveIntParam — положительное целое из параметра пути name.
func PositiveIntParam(c *gin.Context, name string) (int, error) {
	raw := c.Param(name)
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}
	return v, nil
}
