package dto

// ── Bildirim DTO ──

// NotificationListRequest bildirim listesi sorgu parametreleri
type NotificationListRequest struct {
	PaginationRequest
	UnreadOnly bool `form:"unread_only"`
}

// NotificationResponse bildirim yanıtı
type NotificationResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsRead      bool   `json:"is_read"`
	RelatedType string `json:"related_type,omitempty"`
	RelatedID   string `json:"related_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// MarkAllReadResponse toplu okundu yanıtı
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
