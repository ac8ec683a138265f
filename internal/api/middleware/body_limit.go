package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/pkg/response"
)

// multipart zarfı (sınırlar, alan başlıkları) için dosya sınırına eklenen pay
const multipartOverhead = 1 << 20

// BodyLimit JSON istekleri jsonMax, dosya yüklemeleri (multipart) uploadMax ile sınırlar
func BodyLimit(jsonMax, uploadMax int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := jsonMax
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			limit = uploadMax + multipartOverhead
		}

		if c.Request.ContentLength > limit {
			tooLarge(c)
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}

		c.Next()

		if c.Writer.Written() {
			return
		}
		for _, err := range c.Errors {
			var mbe *http.MaxBytesError
			if errors.As(err.Err, &mbe) {
				tooLarge(c)
				return
			}
		}
	}
}

func tooLarge(c *gin.Context) {
	response.Error(c, http.StatusRequestEntityTooLarge, 10005, "İstek gövdesi izin verilen boyutu aşıyor")
	c.Abort()
}
