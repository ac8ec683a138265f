package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/internal/repository"
)

// ── Performans modülü iş hataları ──

var (
	ErrReviewNotFound    = errors.New("değerlendirme bulunamadı")
	ErrReviewFinalized   = errors.New("kesinleşmiş değerlendirme değiştirilemez")
	ErrReviewNotDraft    = errors.New("yalnızca taslak değerlendirmeler gönderilebilir")
	ErrReviewNotSubmit   = errors.New("yalnızca gönderilmiş değerlendirmeler kesinleştirilebilir")
	ErrReviewSelf        = errors.New("kendi performans değerlendirmenizi yapamazsınız")
	ErrReviewScoreBounds = errors.New("puan 1 ile 5 arasında olmalıdır")
)

// PerformanceService performans değerlendirme iş arayüzü
type PerformanceService interface {
	Create(ctx context.Context, req *dto.CreateReviewRequest, callerID string) (*dto.ReviewResponse, error)
	GetByID(ctx context.Context, id string, caller Caller) (*dto.ReviewResponse, error)
	List(ctx context.Context, req *dto.ReviewListRequest, caller Caller) ([]dto.ReviewResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateReviewRequest, callerID string) (*dto.ReviewResponse, error)
	Submit(ctx context.Context, id string, callerID string) (*dto.ReviewResponse, error)
	Finalize(ctx context.Context, id string, callerID string) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	Summary(ctx context.Context) (*dto.PerformanceSummaryResponse, error)
}

type performanceService struct {
	repo     *repository.Repository
	notifier Notifier
	logger   *zap.Logger
}

// NewPerformanceService PerformanceService örneği oluşturur
func NewPerformanceService(repo *repository.Repository, notifier Notifier, logger *zap.Logger) PerformanceService {
	return &performanceService{repo: repo, notifier: notifier, logger: logger}
}

// roundScore tek ondalık
func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

// ────────────────────── Create ──────────────────────

func (s *performanceService) Create(ctx context.Context, req *dto.CreateReviewRequest, callerID string) (*dto.ReviewResponse, error) {
	if req.EmployeeID == callerID {
		return nil, ErrReviewSelf
	}
	score := roundScore(req.Score)
	if score < 1 || score > 5 {
		return nil, ErrReviewScoreBounds
	}

	emp, err := s.repo.Employee.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("çalışan sorgulanamadı", zap.Error(err))
		return nil, err
	}

	review := &model.PerformanceReview{
		EmployeeID:   req.EmployeeID,
		ReviewerID:   callerID,
		Period:       req.Period,
		Score:        score,
		Goals:        req.Goals,
		Strengths:    req.Strengths,
		Improvements: req.Improvements,
		Comments:     req.Comments,
		Status:       model.ReviewStatusDraft,
	}
	review.Audit(callerID)

	if err := s.repo.Performance.Create(ctx, review); err != nil {
		s.logger.Error("değerlendirme oluşturulamadı", zap.Error(err))
		return nil, err
	}
	review.Employee = emp

	resp := toReviewResponse(review)
	return &resp, nil
}

// ────────────────────── GetByID / List ──────────────────────

// GetByID çalışan taslak olmayan kendi değerlendirmelerini görebilir
func (s *performanceService) GetByID(ctx context.Context, id string, caller Caller) (*dto.ReviewResponse, error) {
	review, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsHR() && (review.EmployeeID != caller.EmployeeID || review.Status == model.ReviewStatusDraft) {
		return nil, ErrNoPermission
	}
	resp := toReviewResponse(review)
	return &resp, nil
}

func (s *performanceService) List(ctx context.Context, req *dto.ReviewListRequest, caller Caller) ([]dto.ReviewResponse, int64, error) {
	filter := repository.ReviewFilter{
		EmployeeID: req.EmployeeID,
		Period:     req.Period,
		Status:     req.Status,
		Offset:     req.GetOffset(),
		Limit:      req.GetPageSize(),
	}
	if !caller.IsHR() {
		filter.EmployeeID = caller.EmployeeID
		if filter.Status == "" || filter.Status == model.ReviewStatusDraft {
			filter.Status = model.ReviewStatusFinalized
		}
	}

	reviews, total, err := s.repo.Performance.List(ctx, filter)
	if err != nil {
		s.logger.Error("değerlendirmeler listelenemedi", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		list = append(list, toReviewResponse(&reviews[i]))
	}
	return list, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *performanceService) Update(ctx context.Context, id string, req *dto.UpdateReviewRequest, callerID string) (*dto.ReviewResponse, error) {
	review, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.Status == model.ReviewStatusFinalized {
		return nil, ErrReviewFinalized
	}

	if req.Period != nil {
		review.Period = *req.Period
	}
	if req.Score != nil {
		score := roundScore(*req.Score)
		if score < 1 || score > 5 {
			return nil, ErrReviewScoreBounds
		}
		review.Score = score
	}
	if req.Goals != nil {
		review.Goals = *req.Goals
	}
	if req.Strengths != nil {
		review.Strengths = *req.Strengths
	}
	if req.Improvements != nil {
		review.Improvements = *req.Improvements
	}
	if req.Comments != nil {
		review.Comments = *req.Comments
	}
	review.Audit(callerID)

	if err := s.save(ctx, review); err != nil {
		return nil, err
	}
	resp := toReviewResponse(review)
	return &resp, nil
}

// ────────────────────── Submit / Finalize ──────────────────────

func (s *performanceService) Submit(ctx context.Context, id string, callerID string) (*dto.ReviewResponse, error) {
	review, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.Status != model.ReviewStatusDraft {
		return nil, ErrReviewNotDraft
	}

	review.Status = model.ReviewStatusSubmitted
	review.Audit(callerID)
	if err := s.save(ctx, review); err != nil {
		return nil, err
	}
	resp := toReviewResponse(review)
	return &resp, nil
}

func (s *performanceService) Finalize(ctx context.Context, id string, callerID string) (*dto.ReviewResponse, error) {
	review, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.Status == model.ReviewStatusFinalized {
		return nil, ErrReviewFinalized
	}
	if review.Status != model.ReviewStatusSubmitted {
		return nil, ErrReviewNotSubmit
	}

	now := time.Now()
	review.Status = model.ReviewStatusFinalized
	review.FinalizedAt = &now
	review.Audit(callerID)
	if err := s.save(ctx, review); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, Notice{
		EmployeeID:  review.EmployeeID,
		Type:        model.NotificationReviewFinalized,
		Title:       "Performans değerlendirmeniz kesinleşti",
		Content:     fmt.Sprintf("%s dönemi değerlendirmeniz %.1f puan ile kesinleşti.", review.Period, review.Score),
		RelatedType: "review",
		RelatedID:   review.ReviewID,
	})

	resp := toReviewResponse(review)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *performanceService) Delete(ctx context.Context, id string, callerID string) error {
	review, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if review.Status == model.ReviewStatusFinalized {
		return ErrReviewFinalized
	}
	if err := s.repo.Performance.Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		s.logger.Error("değerlendirme silinemedi", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Summary ──────────────────────

// Summary gönderilmiş ve kesinleşmiş değerlendirmelerin ortalamaları
func (s *performanceService) Summary(ctx context.Context) (*dto.PerformanceSummaryResponse, error) {
	scores, err := s.repo.Performance.ScoresByDepartment(ctx)
	if err != nil {
		s.logger.Error("departman puanları hesaplanamadı", zap.Error(err))
		return nil, err
	}

	resp := &dto.PerformanceSummaryResponse{Departments: make([]dto.DepartmentScoreResponse, 0, len(scores))}
	var total float64
	for _, sc := range scores {
		total += sc.Total
		resp.ReviewCount += sc.Count

		name := sc.DepartmentName
		if name == "" {
			name = "Departmansız"
		}
		resp.Departments = append(resp.Departments, dto.DepartmentScoreResponse{
			DepartmentID:   sc.DepartmentID,
			DepartmentName: name,
			Average:        safeAverage(sc.Total, sc.Count),
			ReviewCount:    sc.Count,
		})
	}
	resp.OverallAverage = safeAverage(total, resp.ReviewCount)
	return resp, nil
}

// ── İç yardımcılar ──

func (s *performanceService) get(ctx context.Context, id string) (*model.PerformanceReview, error) {
	review, err := s.repo.Performance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		s.logger.Error("değerlendirme sorgulanamadı", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return review, nil
}

func (s *performanceService) save(ctx context.Context, review *model.PerformanceReview) error {
	if err := s.repo.Performance.Update(ctx, review); err != nil {
		s.logger.Error("değerlendirme güncellenemedi", zap.String("id", review.ReviewID), zap.Error(err))
		return err
	}
	return nil
}

func toReviewResponse(r *model.PerformanceReview) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:           r.ReviewID,
		Employee:     employeeRef(r.Employee),
		Reviewer:     employeeRef(r.Reviewer),
		EmployeeID:   r.EmployeeID,
		ReviewerID:   r.ReviewerID,
		Period:       r.Period,
		Score:        r.Score,
		Goals:        r.Goals,
		Strengths:    r.Strengths,
		Improvements: r.Improvements,
		Comments:     r.Comments,
		Status:       r.Status,
		FinalizedAt:  formatTimePtr(r.FinalizedAt),
		CreatedAt:    formatTime(r.CreatedAt),
	}
}
