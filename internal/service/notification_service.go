package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/internal/realtime"
	"hr-intelligence/backend/internal/repository"
	"hr-intelligence/backend/pkg/email"
)

var ErrNotificationNotFound = errors.New("bildirim bulunamadı")

const mailTimeout = 10 * time.Second

// Notice bir çalışana iletilecek bildirim
type Notice struct {
	EmployeeID  string
	Type        string
	Title       string
	Content     string
	RelatedType string
	RelatedID   string
}

// Notifier diğer servislerin bildirim göndermek için kullandığı arayüz
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// NotificationService bildirim iş arayüzü
type NotificationService interface {
	Notifier
	List(ctx context.Context, employeeID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error)
	UnreadCount(ctx context.Context, employeeID string) (int64, error)
	MarkRead(ctx context.Context, id, employeeID string) error
	MarkAllRead(ctx context.Context, employeeID string) (int64, error)
	Delete(ctx context.Context, id, employeeID string) error
}

type notificationService struct {
	repo      *repository.Repository
	publisher realtime.Publisher
	mailer    email.Sender
	logger    *zap.Logger
}

// NewNotificationService NotificationService örneği oluşturur
func NewNotificationService(
	repo *repository.Repository,
	publisher realtime.Publisher,
	mailer email.Sender,
	logger *zap.Logger,
) NotificationService {
	if publisher == nil {
		publisher = realtime.NopPublisher{}
	}
	if mailer == nil {
		mailer = email.NopSender{}
	}
	return &notificationService{
		repo:      repo,
		publisher: publisher,
		mailer:    mailer,
		logger:    logger,
	}
}

// ────────────────────── Notify ──────────────────────

// Notify bildirimi kaydeder, anlık olarak iletir ve e-posta gönderir.
// Bildirim hatası asıl işlemi bozmaz; yalnızca loglanır.
func (s *notificationService) Notify(ctx context.Context, n Notice) {
	if n.EmployeeID == "" {
		return
	}

	record := &model.Notification{
		EmployeeID: n.EmployeeID,
		Type:       n.Type,
		Title:      n.Title,
		Content:    n.Content,
	}
	if n.RelatedType != "" {
		record.RelatedType = &n.RelatedType
	}
	if n.RelatedID != "" {
		record.RelatedID = &n.RelatedID
	}

	if err := s.repo.Notification.Create(ctx, record); err != nil {
		s.logger.Error("bildirim kaydedilemedi",
			zap.String("employee_id", n.EmployeeID),
			zap.String("type", n.Type),
			zap.Error(err),
		)
		return
	}

	s.publisher.PublishToEmployee(n.EmployeeID, realtime.Event{
		Type: realtime.EventNotificationCreated,
		Data: toNotificationResponse(record),
	})

	if _, nop := s.mailer.(email.NopSender); nop {
		return
	}
	emp, err := s.repo.Employee.GetByID(ctx, n.EmployeeID)
	if err != nil {
		s.logger.Warn("bildirim e-postası için çalışan bulunamadı", zap.String("employee_id", n.EmployeeID), zap.Error(err))
		return
	}

	go func(to, subject, body string) {
		mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mailTimeout)
		defer cancel()
		if err := s.mailer.Send(mailCtx, to, subject, body); err != nil {
			s.logger.Warn("bildirim e-postası gönderilemedi", zap.String("to", to), zap.Error(err))
		}
	}(emp.Email, n.Title, n.Content)
}

// ────────────────────── List ──────────────────────

func (s *notificationService) List(ctx context.Context, employeeID string, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error) {
	items, total, err := s.repo.Notification.List(ctx, employeeID, req.UnreadOnly, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("bildirim listesi sorgulanamadı", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.NotificationResponse, 0, len(items))
	for i := range items {
		list = append(list, toNotificationResponse(&items[i]))
	}
	return list, total, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, employeeID string) (int64, error) {
	n, err := s.repo.Notification.CountUnread(ctx, employeeID)
	if err != nil {
		s.logger.Error("okunmamış bildirim sayılamadı", zap.String("employee_id", employeeID), zap.Error(err))
		return 0, err
	}
	return n, nil
}

// ────────────────────── Okundu / Sil ──────────────────────

func (s *notificationService) MarkRead(ctx context.Context, id, employeeID string) error {
	if err := s.repo.Notification.MarkRead(ctx, id, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("bildirim okundu işaretlenemedi", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, employeeID string) (int64, error) {
	n, err := s.repo.Notification.MarkAllRead(ctx, employeeID)
	if err != nil {
		s.logger.Error("bildirimler okundu işaretlenemedi", zap.String("employee_id", employeeID), zap.Error(err))
		return 0, err
	}
	return n, nil
}

func (s *notificationService) Delete(ctx context.Context, id, employeeID string) error {
	if err := s.repo.Notification.Delete(ctx, id, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("bildirim silinemedi", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toNotificationResponse(n *model.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:          n.NotificationID,
		Type:        n.Type,
		Title:       n.Title,
		Content:     n.Content,
		IsRead:      n.IsRead,
		RelatedType: derefString(n.RelatedType),
		RelatedID:   derefString(n.RelatedID),
		CreatedAt:   formatTime(n.CreatedAt),
	}
}
