package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/pkg/jwt"
	"hr-intelligence/backend/pkg/response"
)

// Context anahtarları
const (
	ContextEmployeeID   = "user_id"
	ContextRole         = "role"
	ContextDepartmentID = "department_id"
	ContextClaims       = "claims"
)

// BlacklistChecker iptal edilmiş token sorgusu (Redis yoksa nil)
type BlacklistChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth Authorization: Bearer <token> başlığındaki access token'ı doğrular
func JWTAuth(jwtMgr *jwt.Manager, blacklist BlacklistChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "Kimlik doğrulama başlığı eksik")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, 10002, "Kimlik doğrulama başlığı geçersiz")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token geçersiz veya süresi dolmuş")
			c.Abort()
			return
		}

		if claims.TokenType != jwt.TokenTypeAccess {
			response.Unauthorized(c, 10002, "Token türü geçersiz")
			c.Abort()
			return
		}

		// Redis erişilemezse kontrol atlanır
		if blacklist != nil && claims.ID != "" {
			revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "Oturum sonlandırılmış, yeniden giriş yapın")
				c.Abort()
				return
			}
		}

		c.Set(ContextEmployeeID, claims.EmployeeID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextDepartmentID, claims.DepartmentID)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// RoleAuth oturum sahibinin izin verilen rollerden birine sahip olmasını ister
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			response.Unauthorized(c, 10002, "Kimlik doğrulanmadı")
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "Bu işlem için yetkiniz yok")
		c.Abort()
	}
}
