package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/internal/repository"
)

// ── Eğitim modülü iş hataları ──

var (
	ErrTrainingNotFound     = errors.New("eğitim bulunamadı")
	ErrTrainingClosed       = errors.New("bu eğitime kayıt alınmıyor")
	ErrTrainingFull         = errors.New("eğitim kontenjanı dolu")
	ErrAlreadyEnrolled      = errors.New("çalışan bu eğitime zaten kayıtlı")
	ErrEnrollmentNotFound   = errors.New("eğitim kaydı bulunamadı")
	ErrEnrollmentNotActive  = errors.New("eğitim kaydı aktif değil")
	ErrTrainingHasEnrollees = errors.New("katılımcısı olan eğitim silinemez")
)

// TrainingService eğitim iş arayüzü
type TrainingService interface {
	Create(ctx context.Context, req *dto.CreateTrainingRequest, callerID string) (*dto.TrainingResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TrainingResponse, error)
	List(ctx context.Context, req *dto.TrainingListRequest) ([]dto.TrainingResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateTrainingRequest, callerID string) (*dto.TrainingResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	Enroll(ctx context.Context, trainingID string, req *dto.EnrollRequest, caller Caller) (*dto.EnrollmentResponse, error)
	CompleteEnrollment(ctx context.Context, trainingID, enrollmentID string, req *dto.CompleteEnrollmentRequest, callerID string) (*dto.EnrollmentResponse, error)
	CancelEnrollment(ctx context.Context, trainingID, enrollmentID string, caller Caller) error
	ListEnrollments(ctx context.Context, trainingID string) ([]dto.EnrollmentResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]dto.EnrollmentResponse, error)
}

type trainingService struct {
	repo     *repository.Repository
	notifier Notifier
	logger   *zap.Logger
}

// NewTrainingService TrainingService örneği oluşturur
func NewTrainingService(repo *repository.Repository, notifier Notifier, logger *zap.Logger) TrainingService {
	return &trainingService{repo: repo, notifier: notifier, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *trainingService) Create(ctx context.Context, req *dto.CreateTrainingRequest, callerID string) (*dto.TrainingResponse, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrInvalidPeriod
	}

	training := &model.Training{
		Title:       req.Title,
		Description: req.Description,
		Instructor:  req.Instructor,
		Location:    req.Location,
		StartDate:   start,
		EndDate:     end,
		Capacity:    req.Capacity,
		Status:      model.TrainingStatusPlanned,
	}
	training.Audit(callerID)

	if err := s.repo.Training.Create(ctx, training); err != nil {
		s.logger.Error("eğitim oluşturulamadı", zap.Error(err))
		return nil, err
	}
	resp := toTrainingResponse(training)
	return &resp, nil
}

// ────────────────────── GetByID / List ──────────────────────

func (s *trainingService) GetByID(ctx context.Context, id string) (*dto.TrainingResponse, error) {
	training, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTrainingResponse(training)
	return &resp, nil
}

func (s *trainingService) List(ctx context.Context, req *dto.TrainingListRequest) ([]dto.TrainingResponse, int64, error) {
	trainings, total, err := s.repo.Training.List(ctx, repository.TrainingFilter{
		Status: req.Status,
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("eğitimler listelenemedi", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.TrainingResponse, 0, len(trainings))
	for i := range trainings {
		list = append(list, toTrainingResponse(&trainings[i]))
	}
	return list, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *trainingService) Update(ctx context.Context, id string, req *dto.UpdateTrainingRequest, callerID string) (*dto.TrainingResponse, error) {
	training, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		training.Title = *req.Title
	}
	if req.Description != nil {
		training.Description = *req.Description
	}
	if req.Instructor != nil {
		training.Instructor = *req.Instructor
	}
	if req.Location != nil {
		training.Location = *req.Location
	}
	if req.StartDate != nil {
		if training.StartDate, err = parseDate(*req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil {
		if training.EndDate, err = parseDate(*req.EndDate); err != nil {
			return nil, err
		}
	}
	if training.EndDate.Before(training.StartDate) {
		return nil, ErrInvalidPeriod
	}
	if req.Capacity != nil {
		active, err := s.repo.Enrollment.CountActiveByTraining(ctx, id)
		if err != nil {
			s.logger.Error("katılımcılar sayılamadı", zap.Error(err))
			return nil, err
		}
		if *req.Capacity > 0 && int64(*req.Capacity) < active {
			return nil, fmt.Errorf("%w: mevcut katılımcı sayısı %d", ErrTrainingFull, active)
		}
		training.Capacity = *req.Capacity
	}
	if req.Status != nil {
		training.Status = *req.Status
	}
	training.Audit(callerID)

	if err := s.repo.Training.Update(ctx, training); err != nil {
		s.logger.Error("eğitim güncellenemedi", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toTrainingResponse(training)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *trainingService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	active, err := s.repo.Enrollment.CountActiveByTraining(ctx, id)
	if err != nil {
		s.logger.Error("katılımcılar sayılamadı", zap.Error(err))
		return err
	}
	if active > 0 {
		return ErrTrainingHasEnrollees
	}
	if err := s.repo.Training.Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrainingNotFound
		}
		s.logger.Error("eğitim silinemedi", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// Enroll eğitime kayıt
// ═══════════════════════════════════════════════════════════
//
// Eğitim satırı işlem boyunca kilitlenir; eşzamanlı kayıtlar kontenjanı aşamaz.
// Kontenjan 0 ise sınırsızdır. İptal edilmiş kayıt yeniden etkinleştirilir.

func (s *trainingService) Enroll(ctx context.Context, trainingID string, req *dto.EnrollRequest, caller Caller) (*dto.EnrollmentResponse, error) {
	employeeID := caller.EmployeeID
	if req != nil && req.EmployeeID != "" && req.EmployeeID != caller.EmployeeID {
		if !caller.IsHR() {
			return nil, ErrNoPermission
		}
		employeeID = req.EmployeeID
	}

	emp, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("çalışan sorgulanamadı", zap.Error(err))
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("işlem başlatılamadı", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()
	rollback := func() {
		if tx != nil {
			tx.Rollback()
		}
	}
	txRepo := s.repo.WithTx(tx)

	training, err := txRepo.Training.LockByID(ctx, trainingID)
	if err != nil {
		rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainingNotFound
		}
		s.logger.Error("eğitim kilitlenemedi", zap.Error(err))
		return nil, err
	}
	if training.Status != model.TrainingStatusPlanned && training.Status != model.TrainingStatusOngoing {
		rollback()
		return nil, ErrTrainingClosed
	}

	existing, err := txRepo.Enrollment.GetByTrainingAndEmployee(ctx, trainingID, employeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		rollback()
		s.logger.Error("kayıt sorgulanamadı", zap.Error(err))
		return nil, err
	}
	if existing != nil && existing.Status != model.EnrollmentStatusCancelled {
		rollback()
		return nil, ErrAlreadyEnrolled
	}

	if training.Capacity > 0 {
		active, err := txRepo.Enrollment.CountActiveByTraining(ctx, trainingID)
		if err != nil {
			rollback()
			s.logger.Error("katılımcılar sayılamadı", zap.Error(err))
			return nil, err
		}
		if active >= int64(training.Capacity) {
			rollback()
			return nil, ErrTrainingFull
		}
	}

	enrollment := existing
	if enrollment != nil {
		enrollment.Status = model.EnrollmentStatusEnrolled
		enrollment.Score = nil
		enrollment.CompletedAt = nil
		enrollment.Audit(caller.EmployeeID)
		err = txRepo.Enrollment.Update(ctx, enrollment)
	} else {
		enrollment = &model.TrainingEnrollment{
			TrainingID: trainingID,
			EmployeeID: employeeID,
			Status:     model.EnrollmentStatusEnrolled,
		}
		enrollment.Audit(caller.EmployeeID)
		err = txRepo.Enrollment.Create(ctx, enrollment)
	}
	if err != nil {
		rollback()
		s.logger.Error("eğitim kaydı yazılamadı", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("işlem onaylanamadı", zap.Error(err))
			return nil, err
		}
	}

	enrollment.Training = training
	enrollment.Employee = emp

	s.notifier.Notify(ctx, Notice{
		EmployeeID:  employeeID,
		Type:        model.NotificationTrainingEnrolled,
		Title:       "Eğitime kaydınız yapıldı",
		Content:     fmt.Sprintf("%s eğitimine kaydınız yapıldı. Başlangıç: %s", training.Title, formatDate(training.StartDate)),
		RelatedType: "training",
		RelatedID:   training.TrainingID,
	})

	resp := toEnrollmentResponse(enrollment)
	return &resp, nil
}

// ────────────────────── CompleteEnrollment ──────────────────────

func (s *trainingService) CompleteEnrollment(ctx context.Context, trainingID, enrollmentID string, req *dto.CompleteEnrollmentRequest, callerID string) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.getEnrollment(ctx, trainingID, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status != model.EnrollmentStatusEnrolled {
		return nil, ErrEnrollmentNotActive
	}

	now := time.Now()
	enrollment.Status = model.EnrollmentStatusCompleted
	enrollment.CompletedAt = &now
	if req != nil && req.Score != nil {
		score := round2(*req.Score)
		enrollment.Score = &score
	}
	enrollment.Audit(callerID)

	if err := s.repo.Enrollment.Update(ctx, enrollment); err != nil {
		s.logger.Error("eğitim kaydı güncellenemedi", zap.String("id", enrollmentID), zap.Error(err))
		return nil, err
	}
	resp := toEnrollmentResponse(enrollment)
	return &resp, nil
}

// CancelEnrollment kayıt sahibi veya İK kaydı iptal edebilir
func (s *trainingService) CancelEnrollment(ctx context.Context, trainingID, enrollmentID string, caller Caller) error {
	enrollment, err := s.getEnrollment(ctx, trainingID, enrollmentID)
	if err != nil {
		return err
	}
	if !caller.IsHR() && enrollment.EmployeeID != caller.EmployeeID {
		return ErrNoPermission
	}
	if enrollment.Status != model.EnrollmentStatusEnrolled {
		return ErrEnrollmentNotActive
	}

	enrollment.Status = model.EnrollmentStatusCancelled
	enrollment.Audit(caller.EmployeeID)
	if err := s.repo.Enrollment.Update(ctx, enrollment); err != nil {
		s.logger.Error("eğitim kaydı iptal edilemedi", zap.String("id", enrollmentID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Katılım listeleri ──────────────────────

func (s *trainingService) ListEnrollments(ctx context.Context, trainingID string) ([]dto.EnrollmentResponse, error) {
	if _, err := s.get(ctx, trainingID); err != nil {
		return nil, err
	}
	list, err := s.repo.Enrollment.ListByTraining(ctx, trainingID)
	if err != nil {
		s.logger.Error("eğitim kayıtları listelenemedi", zap.Error(err))
		return nil, err
	}
	return toEnrollmentResponses(list), nil
}

func (s *trainingService) ListMine(ctx context.Context, employeeID string) ([]dto.EnrollmentResponse, error) {
	list, err := s.repo.Enrollment.ListByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("eğitim kayıtları listelenemedi", zap.Error(err))
		return nil, err
	}
	return toEnrollmentResponses(list), nil
}

// ── İç yardımcılar ──

func (s *trainingService) get(ctx context.Context, id string) (*model.Training, error) {
	training, err := s.repo.Training.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainingNotFound
		}
		s.logger.Error("eğitim sorgulanamadı", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return training, nil
}

func (s *trainingService) getEnrollment(ctx context.Context, trainingID, enrollmentID string) (*model.TrainingEnrollment, error) {
	enrollment, err := s.repo.Enrollment.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		s.logger.Error("eğitim kaydı sorgulanamadı", zap.String("id", enrollmentID), zap.Error(err))
		return nil, err
	}
	if enrollment.TrainingID != trainingID {
		return nil, ErrEnrollmentNotFound
	}
	return enrollment, nil
}

func toTrainingResponse(t *model.Training) dto.TrainingResponse {
	return dto.TrainingResponse{
		ID:          t.TrainingID,
		Title:       t.Title,
		Description: t.Description,
		Instructor:  t.Instructor,
		Location:    t.Location,
		StartDate:   formatDate(t.StartDate),
		EndDate:     formatDate(t.EndDate),
		Capacity:    t.Capacity,
		Status:      t.Status,
		CreatedAt:   formatTime(t.CreatedAt),
	}
}

func toEnrollmentResponses(list []model.TrainingEnrollment) []dto.EnrollmentResponse {
	result := make([]dto.EnrollmentResponse, 0, len(list))
	for i := range list {
		result = append(result, toEnrollmentResponse(&list[i]))
	}
	return result
}

func toEnrollmentResponse(e *model.TrainingEnrollment) dto.EnrollmentResponse {
	resp := dto.EnrollmentResponse{
		ID:          e.EnrollmentID,
		TrainingID:  e.TrainingID,
		Employee:    employeeRef(e.Employee),
		EmployeeID:  e.EmployeeID,
		Status:      e.Status,
		Score:       e.Score,
		CompletedAt: formatTimePtr(e.CompletedAt),
		CreatedAt:   formatTime(e.CreatedAt),
	}
	if e.Training != nil {
		t := toTrainingResponse(e.Training)
		resp.Training = &t
	}
	return resp
}
