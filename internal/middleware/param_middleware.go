package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam разбирает числовой path-параметр и кладет его в контекст
// под ключом contextKey. Невалидное или нулевое значение прерывает запрос с 400,
// поэтому обработчики могут безопасно использовать c.MustGet(contextKey).(uint).
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(paramName)
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || value == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Invalid " + paramName + " parameter",
			})
			return
		}

		c.Set(contextKey, uint(value))
		c.Next()
	}
}
