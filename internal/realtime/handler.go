package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"hr-intelligence/backend/pkg/jwt"
	"hr-intelligence/backend/pkg/response"
)

// TokenParser access token doğrulayıcı
type TokenParser interface {
	ParseToken(tokenString string) (*jwt.Claims, error)
}

// RevocationChecker çıkış yapılmış token sorgusu (Redis yoksa nil)
type RevocationChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Handler websocket yükseltme uç noktası (GET /ws?token=...)
type Handler struct {
	hub      *Hub
	tokens   TokenParser
	revoked  RevocationChecker
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHandler websocket handler'ı oluşturur. allowedOrigins boşsa tüm origin'lere izin verilir.
func NewHandler(hub *Hub, tokens TokenParser, revoked RevocationChecker, allowedOrigins []string, logger *zap.Logger) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	return &Handler{
		hub:    hub,
		tokens:  tokens,
		revoked: revoked,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowed) == 0 || allowed["*"] {
					return true
				}
				return allowed[strings.TrimRight(origin, "/")]
			},
		},
	}
}

// Serve tarayıcılar websocket isteğine başlık ekleyemediği için token sorgu parametresinden okunur
func (h *Handler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Unauthorized(c, 10002, "Token eksik")
		return
	}

	claims, err := h.tokens.ParseToken(token)
	if err != nil || claims.TokenType != jwt.TokenTypeAccess {
		response.Unauthorized(c, 10003, "Token geçersiz veya süresi dolmuş")
		return
	}
	if h.revoked != nil && claims.ID != "" {
		if revoked, err := h.revoked.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && revoked {
			response.Unauthorized(c, 10002, "Oturum sonlandırılmış, yeniden giriş yapın")
			return
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket yükseltme başarısız", zap.String("employee_id", claims.EmployeeID), zap.Error(err))
		return
	}

	client := &Client{
		hub:        h.hub,
		conn:       conn,
		employeeID: claims.EmployeeID,
		send:       make(chan []byte, sendBufferSize),
	}
	// join sonrasında kanalı Hub kapatabilir; karşılama olayı önceden kuyruğa alınır
	if hello, err := json.Marshal(Event{Type: EventConnected, Data: gin.H{"employee_id": claims.EmployeeID}}); err == nil {
		client.send <- hello
	}
	if !h.hub.join(client) {
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
