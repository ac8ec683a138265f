package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/internal/realtime"
	"hr-intelligence/backend/internal/repository"
)

// ── Mesaj modülü iş hataları ──

var (
	ErrMessageNotFound      = errors.New("mesaj bulunamadı")
	ErrMessageToSelf        = errors.New("kendinize mesaj gönderemezsiniz")
	ErrRecipientNotFound    = errors.New("alıcı bulunamadı")
	ErrRecipientUnavailable = errors.New("alıcı artık sistemde aktif değil")
)

// MessageService çalışanlar arası mesajlaşma iş arayüzü
type MessageService interface {
	Send(ctx context.Context, req *dto.SendMessageRequest, senderID string) (*dto.MessageResponse, error)
	Inbox(ctx context.Context, employeeID string, page *dto.PaginationRequest) ([]dto.MessageResponse, int64, error)
	Sent(ctx context.Context, employeeID string, page *dto.PaginationRequest) ([]dto.MessageResponse, int64, error)
	Get(ctx context.Context, id, employeeID string) (*dto.MessageResponse, error)
	Delete(ctx context.Context, id, employeeID string) error
	UnreadCount(ctx context.Context, employeeID string) (int64, error)
}

type messageService struct {
	repo      *repository.Repository
	publisher realtime.Publisher
	logger    *zap.Logger
}

// NewMessageService MessageService örneği oluşturur
func NewMessageService(repo *repository.Repository, publisher realtime.Publisher, logger *zap.Logger) MessageService {
	if publisher == nil {
		publisher = realtime.NopPublisher{}
	}
	return &messageService{repo: repo, publisher: publisher, logger: logger}
}

// ────────────────────── Send ──────────────────────

func (s *messageService) Send(ctx context.Context, req *dto.SendMessageRequest, senderID string) (*dto.MessageResponse, error) {
	if req.RecipientID == senderID {
		return nil, ErrMessageToSelf
	}

	recipient, err := s.repo.Employee.GetByID(ctx, req.RecipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		s.logger.Error("alıcı sorgulanamadı", zap.Error(err))
		return nil, err
	}
	if recipient.Status == model.EmployeeStatusTerminated {
		return nil, ErrRecipientUnavailable
	}
	sender, err := s.repo.Employee.GetByID(ctx, senderID)
	if err != nil {
		s.logger.Error("gönderen sorgulanamadı", zap.Error(err))
		return nil, err
	}

	msg := &model.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Subject:     strings.TrimSpace(req.Subject),
		Body:        req.Body,
	}
	msg.Audit(senderID)

	if err := s.repo.Message.Create(ctx, msg); err != nil {
		s.logger.Error("mesaj kaydedilemedi", zap.Error(err))
		return nil, err
	}
	msg.Sender = sender
	msg.Recipient = recipient

	resp := toMessageResponse(msg)
	s.publisher.PublishToEmployee(msg.RecipientID, realtime.Event{
		Type: realtime.EventMessageCreated,
		Data: resp,
	})
	return &resp, nil
}

// ────────────────────── Inbox / Sent ──────────────────────

func (s *messageService) Inbox(ctx context.Context, employeeID string, page *dto.PaginationRequest) ([]dto.MessageResponse, int64, error) {
	msgs, total, err := s.repo.Message.ListInbox(ctx, employeeID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("gelen kutusu sorgulanamadı", zap.Error(err))
		return nil, 0, err
	}
	return toMessageResponses(msgs), total, nil
}

func (s *messageService) Sent(ctx context.Context, employeeID string, page *dto.PaginationRequest) ([]dto.MessageResponse, int64, error) {
	msgs, total, err := s.repo.Message.ListSent(ctx, employeeID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("gönderilen mesajlar sorgulanamadı", zap.Error(err))
		return nil, 0, err
	}
	return toMessageResponses(msgs), total, nil
}

// ────────────────────── Get ──────────────────────

// Get yalnızca gönderen ve alıcı görebilir; alıcı açtığında okundu işaretlenir
func (s *messageService) Get(ctx context.Context, id, employeeID string) (*dto.MessageResponse, error) {
	msg, err := s.visibleTo(ctx, id, employeeID)
	if err != nil {
		return nil, err
	}

	if msg.RecipientID == employeeID && !msg.IsRead {
		now := time.Now()
		if err := s.repo.Message.MarkRead(ctx, msg.MessageID, now); err != nil {
			s.logger.Warn("mesaj okundu işaretlenemedi", zap.String("id", id), zap.Error(err))
		} else {
			msg.IsRead = true
			msg.ReadAt = &now
		}
	}

	resp := toMessageResponse(msg)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

// Delete mesajı yalnızca isteyen taraf için gizler
func (s *messageService) Delete(ctx context.Context, id, employeeID string) error {
	msg, err := s.visibleTo(ctx, id, employeeID)
	if err != nil {
		return err
	}
	if err := s.repo.Message.HideFor(ctx, msg, employeeID); err != nil {
		s.logger.Error("mesaj silinemedi", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *messageService) UnreadCount(ctx context.Context, employeeID string) (int64, error) {
	n, err := s.repo.Message.CountUnread(ctx, employeeID)
	if err != nil {
		s.logger.Error("okunmamış mesajlar sayılamadı", zap.Error(err))
		return 0, err
	}
	return n, nil
}

// visibleTo mesaj çalışan için gizlenmişse veya taraf değilse bulunamadı döner
func (s *messageService) visibleTo(ctx context.Context, id, employeeID string) (*model.Message, error) {
	msg, err := s.repo.Message.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		s.logger.Error("mesaj sorgulanamadı", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	switch employeeID {
	case msg.SenderID:
		if msg.SenderDeleted {
			return nil, ErrMessageNotFound
		}
	case msg.RecipientID:
		if msg.RecipientDeleted {
			return nil, ErrMessageNotFound
		}
	default:
		return nil, ErrNoPermission
	}
	return msg, nil
}

func toMessageResponses(msgs []model.Message) []dto.MessageResponse {
	list := make([]dto.MessageResponse, 0, len(msgs))
	for i := range msgs {
		list = append(list, toMessageResponse(&msgs[i]))
	}
	return list
}

func toMessageResponse(m *model.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        m.MessageID,
		Sender:    employeeRef(m.Sender),
		Recipient: employeeRef(m.Recipient),
		Subject:   m.Subject,
		Body:      m.Body,
		IsRead:    m.IsRead,
		ReadAt:    formatTimePtr(m.ReadAt),
		CreatedAt: formatTime(m.CreatedAt),
	}
}
