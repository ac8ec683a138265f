package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AfterWrite başarılı yazma isteklerinden sonra fn'i çağırır (panel önbelleğinin temizlenmesi gibi).
// fn nil ise hiçbir şey yapmaz.
func AfterWrite(fn func(ctx context.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if fn == nil {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		fn(c.Request.Context())
	}
}
