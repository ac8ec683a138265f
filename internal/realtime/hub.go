package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Hub tüm websocket bağlantılarını çalışan bazında tutar
type Hub struct {
	// employeeID → bağlantı kümesi (aynı çalışan birden çok sekme açabilir)
	clients map[string]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	seq    atomic.Int64
	logger *zap.Logger
}

// NewHub yeni bir Hub oluşturur
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run kayıt/çıkış döngüsü; ctx iptal edilince tüm bağlantıları kapatır
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			h.shutdown()
			close(h.done)
			return
		}
	}
}

// join bağlantıyı kaydeder; Hub kapanmışsa false döner
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// leave bağlantıyı çıkarır; Hub kapanmışsa bekleme yapmaz
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.employeeID]; !ok {
		h.clients[client.employeeID] = make(map[*Client]bool)
	}
	h.clients[client.employeeID][client] = true

	h.logger.Debug("websocket bağlantısı açıldı",
		zap.String("employee_id", client.employeeID),
		zap.Int("connections", len(h.clients[client.employeeID])))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.employeeID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.employeeID)
	}

	h.logger.Debug("websocket bağlantısı kapandı", zap.String("employee_id", client.employeeID))
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			close(client.send)
		}
	}
	h.clients = make(map[string]map[*Client]bool)
	h.logger.Info("websocket hub kapatıldı")
}

// PublishToEmployee olayı çalışanın tüm bağlantılarına iletir. Tamponu dolu bağlantılar düşürülür.
func (h *Hub) PublishToEmployee(employeeID string, event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("websocket olayı serileştirilemedi", zap.String("type", event.Type), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[employeeID] {
		select {
		case client.send <- data:
		default:
			go h.leave(client)
		}
	}
}

// ConnectionCount çalışanın açık bağlantı sayısı
func (h *Hub) ConnectionCount(employeeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[employeeID])
}

// OnlineEmployeeIDs bağlı çalışan kimlikleri
func (h *Hub) OnlineEmployeeIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}
