package middleware

import (
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sorgu dizgesinde günlüğe açık yazılmayan parametreler (/ws?token=...)
var redactedParams = []string{"token", "access_token", "refresh_token"}

// probe yolları yalnızca debug seviyesinde yazılır
var probePaths = map[string]bool{"/health": true, "/ready": true}

// Logger her isteği tek satırlık yapılandırılmış kayıt olarak yazar
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", c.Writer.Size()),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if q := redactQuery(c.Request.URL.RawQuery); q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if id := c.GetString(ContextEmployeeID); id != "" {
			fields = append(fields, zap.String("employee_id", id), zap.String("role", c.GetString(ContextRole)))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()))
		}

		switch {
		case status >= 500:
			logger.Error("istek sunucu hatasıyla bitti", fields...)
		case status >= 400:
			logger.Warn("istek reddedildi", fields...)
		case probePaths[c.Request.URL.Path]:
			logger.Debug("sağlık kontrolü", fields...)
		default:
			logger.Info("istek", fields...)
		}
	}
}

func redactQuery(raw string) string {
	if raw == "" {
		return ""
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return "<çözülemedi>"
	}
	for _, key := range redactedParams {
		if values.Has(key) {
			values.Set(key, "***")
		}
	}
	return values.Encode()
}
