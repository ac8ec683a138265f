package dto

// ── Mesaj DTO ──

// SendMessageRequest mesaj gönderme isteği
type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" binding:"required,uuid"`
	Subject     string `json:"subject"      binding:"required,min=1,max=200"`
	Body        string `json:"body"         binding:"required,min=1,max=5000"`
}

// MessageResponse mesaj yanıtı
type MessageResponse struct {
	ID        string       `json:"id"`
	Sender    *EmployeeRef `json:"sender,omitempty"`
	Recipient *EmployeeRef `json:"recipient,omitempty"`
	Subject   string       `json:"subject"`
	Body      string       `json:"body"`
	IsRead    bool         `json:"is_read"`
	ReadAt    string       `json:"read_at,omitempty"`
	CreatedAt string       `json:"created_at"`
}
