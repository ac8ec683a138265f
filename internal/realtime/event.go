// Package realtime çalışanlara websocket üzerinden anlık olay iletir.
//
// Akış: servis kaydı veritabanına yazar → Publisher.PublishToEmployee çağrılır →
// Hub olayı çalışanın tüm açık bağlantılarına iletir.
package realtime

// Event websocket üzerinden gönderilen mesaj
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
	Seq  int64       `json:"seq,omitempty"`
}

// Olay türleri
const (
	EventNotificationCreated = "notification.created"
	EventMessageCreated      = "message.created"
	EventConnected           = "connected"
)

// Publisher servis katmanının olay yayınlamak için kullandığı arayüz
type Publisher interface {
	PublishToEmployee(employeeID string, event Event)
}

// NopPublisher olayları yok sayar (testler ve websocket kapalıyken)
type NopPublisher struct{}

// PublishToEmployee hiçbir şey yapmaz
func (NopPublisher) PublishToEmployee(string, Event) {}
