package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hr-intelligence/backend/internal/model"
)

// MessageRepository mesaj veri erişim arayüzü
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	GetByID(ctx context.Context, id string) (*model.Message, error)
	ListInbox(ctx context.Context, employeeID string, offset, limit int) ([]model.Message, int64, error)
	ListSent(ctx context.Context, employeeID string, offset, limit int) ([]model.Message, int64, error)
	MarkRead(ctx context.Context, id string, at time.Time) error
	HideFor(ctx context.Context, msg *model.Message, employeeID string) error
	CountUnread(ctx context.Context, employeeID string) (int64, error)
}

type messageRepo struct {
	db *gorm.DB
}

// NewMessageRepo MessageRepository örneği oluşturur
func NewMessageRepo(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepo) GetByID(ctx context.Context, id string) (*model.Message, error) {
	var msg model.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Where("message_id = ?", id).
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepo) ListInbox(ctx context.Context, employeeID string, offset, limit int) ([]model.Message, int64, error) {
	return r.list(ctx, "recipient_id = ? AND recipient_deleted = ?", employeeID, offset, limit)
}

func (r *messageRepo) ListSent(ctx context.Context, employeeID string, offset, limit int) ([]model.Message, int64, error) {
	return r.list(ctx, "sender_id = ? AND sender_deleted = ?", employeeID, offset, limit)
}

func (r *messageRepo) list(ctx context.Context, where string, employeeID string, offset, limit int) ([]model.Message, int64, error) {
	var list []model.Message
	var total int64

	db := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where(where, employeeID, false)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(db.Preload("Sender").Preload("Recipient"), offset, limit).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *messageRepo) MarkRead(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("message_id = ? AND is_read = ?", id, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": at,
		}).Error
}

// HideFor mesajı yalnızca ilgili taraf için gizler; iki taraf da silince kayıt kalır ama listelenmez
func (r *messageRepo) HideFor(ctx context.Context, msg *model.Message, employeeID string) error {
	column := "recipient_deleted"
	if msg.SenderID == employeeID {
		column = "sender_deleted"
	}
	return r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("message_id = ?", msg.MessageID).
		Update(column, true).Error
}

func (r *messageRepo) CountUnread(ctx context.Context, employeeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("recipient_id = ? AND is_read = ? AND recipient_deleted = ?", employeeID, false, false).
		Count(&count).Error
	return count, err
}
