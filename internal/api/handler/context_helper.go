package handler

import (
	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/internal/api/middleware"
	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/jwt"
	"hr-intelligence/backend/pkg/response"
)

// MustGetUserID JWT ara katmanının yazdığı çalışan kimliğini okur.
// Bulunamazsa 401 yazılır; çağıran ok=false ise doğrudan dönmelidir.
func MustGetUserID(c *gin.Context) (string, bool) {
	id := c.GetString(middleware.ContextEmployeeID)
	if id == "" {
		response.Unauthorized(c, 10002, "Kimlik doğrulanmadı")
		return "", false
	}
	return id, true
}

// MustGetCaller çalışan kimliği ve rolünü birlikte döner
func MustGetCaller(c *gin.Context) (service.Caller, bool) {
	id, ok := MustGetUserID(c)
	if !ok {
		return service.Caller{}, false
	}
	role := c.GetString(middleware.ContextRole)
	if role == "" {
		response.Unauthorized(c, 10002, "Kimlik doğrulanmadı")
		return service.Caller{}, false
	}
	return service.Caller{EmployeeID: id, Role: role}, true
}

// MustGetClaims çıkış işlemi için token bilgileri
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.ContextClaims)
	if !exists {
		response.Unauthorized(c, 10002, "Kimlik doğrulanmadı")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "Kimlik doğrulanmadı")
		return nil, false
	}
	return claims, true
}

// mustParam boş yol parametresini 400 ile reddeder
func mustParam(c *gin.Context, name string) (string, bool) {
	v := c.Param(name)
	if v == "" {
		response.BadRequest(c, 10001, name+" alanı zorunludur")
		return "", false
	}
	return v, true
}
