package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel ortak denetim alanları (tüm iş modellerine gömülür)
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}

// SoftDeleteModel yumuşak silme destekli denetim alanları
type SoftDeleteModel struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index"     json:"deleted_at,omitempty"`
	DeletedBy *string        `gorm:"type:uuid" json:"deleted_by,omitempty"`
}

// VersionedModel iyimser kilitli, yumuşak silinebilir model
type VersionedModel struct {
	SoftDeleteModel
	Version int `gorm:"not null;default:1" json:"version"`
}

// Audit oluşturan ve güncelleyen kullanıcıyı işaretler
func (b *BaseModel) Audit(callerID string) {
	if callerID == "" {
		return
	}
	if b.CreatedBy == nil {
		b.CreatedBy = &callerID
	}
	b.UpdatedBy = &callerID
}
