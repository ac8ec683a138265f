package model

import "time"

// Message çalışanlar arası mesaj tablosu — messages
type Message struct {
	MessageID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"message_id"`
	SenderID         string     `gorm:"type:uuid;not null"                             json:"sender_id"`
	RecipientID      string     `gorm:"type:uuid;not null"                             json:"recipient_id"`
	Subject          string     `gorm:"type:varchar(200);not null"                     json:"subject"`
	Body             string     `gorm:"type:text;not null"                             json:"body"`
	IsRead           bool       `gorm:"not null;default:false"                         json:"is_read"`
	ReadAt           *time.Time `                                                      json:"read_at,omitempty"`
	SenderDeleted    bool       `gorm:"not null;default:false"                         json:"-"`
	RecipientDeleted bool       `gorm:"not null;default:false"                         json:"-"`
	BaseModel

	Sender    *Employee `gorm:"foreignKey:SenderID;references:EmployeeID"    json:"sender,omitempty"`
	Recipient *Employee `gorm:"foreignKey:RecipientID;references:EmployeeID" json:"recipient,omitempty"`
}

// TableName tablo adı
func (Message) TableName() string { return "messages" }
