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
	pkgerrors "hr-intelligence/backend/pkg/errors"
)

// ── İzin modülü iş hataları ──

var (
	ErrLeaveNotFound         = errors.New("izin talebi bulunamadı")
	ErrLeaveNoBusinessDays   = errors.New("seçilen aralıkta iş günü yok")
	ErrLeaveOverlap          = errors.New("bu tarihlerde bekleyen veya onaylı başka bir izniniz var")
	ErrLeaveBalanceExceeded  = errors.New("yıllık izin bakiyesi yetersiz")
	ErrLeaveNotPending       = errors.New("yalnızca bekleyen izin talepleri işlenebilir")
	ErrLeaveSelfApproval     = errors.New("kendi izin talebinizi onaylayamaz veya reddedemezsiniz")
	ErrLeaveRejectNeedReason = errors.New("ret gerekçesi zorunludur")
	ErrLeaveCrossesYear      = errors.New("yıllık izin yıl sonunu aşamaz, her yıl için ayrı talep oluşturun")
)

// LeaveService izin iş arayüzü
type LeaveService interface {
	Create(ctx context.Context, req *dto.CreateLeaveRequest, caller Caller) (*dto.LeaveResponse, error)
	GetByID(ctx context.Context, id string, caller Caller) (*dto.LeaveResponse, error)
	List(ctx context.Context, req *dto.LeaveListRequest, caller Caller) ([]dto.LeaveResponse, int64, error)
	ListPending(ctx context.Context) ([]dto.LeaveResponse, error)
	Approve(ctx context.Context, id string, caller Caller) (*dto.LeaveResponse, error)
	Reject(ctx context.Context, id string, reason string, caller Caller) (*dto.LeaveResponse, error)
	Cancel(ctx context.Context, id string, caller Caller) (*dto.LeaveResponse, error)
	Balance(ctx context.Context, employeeID string, year int) (*dto.LeaveBalanceResponse, error)
}

type leaveService struct {
	repo     *repository.Repository
	notifier Notifier
	logger   *zap.Logger
}

// NewLeaveService LeaveService örneği oluşturur
func NewLeaveService(repo *repository.Repository, notifier Notifier, logger *zap.Logger) LeaveService {
	return &leaveService{repo: repo, notifier: notifier, logger: logger}
}

// BusinessDays iki tarih arasındaki (dahil) hafta içi gün sayısı
func BusinessDays(start, end time.Time) int {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return 0
	}
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ────────────────────── Create ──────────────────────

func (s *leaveService) Create(ctx context.Context, req *dto.CreateLeaveRequest, caller Caller) (*dto.LeaveResponse, error) {
	employeeID := caller.EmployeeID
	if req.EmployeeID != "" && req.EmployeeID != caller.EmployeeID {
		if !caller.IsHR() {
			return nil, ErrNoPermission
		}
		employeeID = req.EmployeeID
	}

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

	// Yıllık izin başlangıç yılının bakiyesinden düşülür
	if req.LeaveType == model.LeaveTypeAnnual && start.Year() != end.Year() {
		return nil, ErrLeaveCrossesYear
	}

	totalDays := BusinessDays(start, end)
	if totalDays < 1 {
		return nil, ErrLeaveNoBusinessDays
	}

	emp, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("çalışan sorgulanamadı", zap.String("id", employeeID), zap.Error(err))
		return nil, err
	}

	overlap, err := s.repo.Leave.HasOverlap(ctx, employeeID, start, end)
	if err != nil {
		s.logger.Error("izin çakışması kontrol edilemedi", zap.Error(err))
		return nil, err
	}
	if overlap {
		return nil, ErrLeaveOverlap
	}

	if req.LeaveType == model.LeaveTypeAnnual {
		if err := s.checkAnnualBalance(ctx, emp, start.Year(), totalDays); err != nil {
			return nil, err
		}
	}

	leave := &model.Leave{
		EmployeeID: employeeID,
		LeaveType:  req.LeaveType,
		StartDate:  start,
		EndDate:    end,
		TotalDays:  totalDays,
		Reason:     req.Reason,
		Status:     model.LeaveStatusPending,
	}
	leave.Audit(caller.EmployeeID)

	if err := s.repo.Leave.Create(ctx, leave); err != nil {
		s.logger.Error("izin talebi oluşturulamadı", zap.Error(err))
		return nil, err
	}
	leave.Employee = emp

	// Departman yöneticisine bilgi ver
	if emp.Department != nil && emp.Department.ManagerID != nil && *emp.Department.ManagerID != employeeID {
		s.notifier.Notify(ctx, Notice{
			EmployeeID:  *emp.Department.ManagerID,
			Type:        model.NotificationLeaveRequested,
			Title:       "Yeni izin talebi",
			Content:     fmt.Sprintf("%s, %s - %s tarihleri için %d günlük izin talep etti.", emp.FullName(), formatDate(start), formatDate(end), totalDays),
			RelatedType: "leave",
			RelatedID:   leave.LeaveID,
		})
	}

	resp := toLeaveResponse(leave)
	return &resp, nil
}

// ────────────────────── GetByID / List ──────────────────────

func (s *leaveService) GetByID(ctx context.Context, id string, caller Caller) (*dto.LeaveResponse, error) {
	leave, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsHR() && leave.EmployeeID != caller.EmployeeID {
		return nil, ErrNoPermission
	}
	resp := toLeaveResponse(leave)
	return &resp, nil
}

// List çalışanlar yalnızca kendi izinlerini görür
func (s *leaveService) List(ctx context.Context, req *dto.LeaveListRequest, caller Caller) ([]dto.LeaveResponse, int64, error) {
	filter := repository.LeaveFilter{
		EmployeeID: req.EmployeeID,
		Status:     req.Status,
		LeaveType:  req.LeaveType,
		Offset:     req.GetOffset(),
		Limit:      req.GetPageSize(),
	}
	if !caller.IsHR() {
		filter.EmployeeID = caller.EmployeeID
	}

	leaves, total, err := s.repo.Leave.List(ctx, filter)
	if err != nil {
		s.logger.Error("izinler listelenemedi", zap.Error(err))
		return nil, 0, err
	}
	return toLeaveResponses(leaves), total, nil
}

func (s *leaveService) ListPending(ctx context.Context) ([]dto.LeaveResponse, error) {
	leaves, err := s.repo.Leave.ListPending(ctx)
	if err != nil {
		s.logger.Error("bekleyen izinler listelenemedi", zap.Error(err))
		return nil, err
	}
	return toLeaveResponses(leaves), nil
}

// ────────────────────── Approve / Reject / Cancel ──────────────────────

func (s *leaveService) Approve(ctx context.Context, id string, caller Caller) (*dto.LeaveResponse, error) {
	leave, err := s.pendingForDecision(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	// Onay anında bakiye yeniden kontrol edilir; bekleyen başka talepler onaylanmış olabilir
	if leave.LeaveType == model.LeaveTypeAnnual {
		emp := leave.Employee
		if emp == nil {
			if emp, err = s.repo.Employee.GetByID(ctx, leave.EmployeeID); err != nil {
				s.logger.Error("çalışan sorgulanamadı", zap.Error(err))
				return nil, err
			}
		}
		if err := s.checkAnnualBalance(ctx, emp, leave.StartDate.Year(), leave.TotalDays); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	leave.Status = model.LeaveStatusApproved
	leave.ApprovedBy = &caller.EmployeeID
	leave.ApprovedAt = &now
	leave.Audit(caller.EmployeeID)

	if err := s.transition(ctx, leave); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, Notice{
		EmployeeID:  leave.EmployeeID,
		Type:        model.NotificationLeaveApproved,
		Title:       "İzin talebiniz onaylandı",
		Content:     fmt.Sprintf("%s - %s tarihleri arasındaki izin talebiniz onaylandı.", formatDate(leave.StartDate), formatDate(leave.EndDate)),
		RelatedType: "leave",
		RelatedID:   leave.LeaveID,
	})

	resp := toLeaveResponse(leave)
	return &resp, nil
}

func (s *leaveService) Reject(ctx context.Context, id string, reason string, caller Caller) (*dto.LeaveResponse, error) {
	if reason == "" {
		return nil, ErrLeaveRejectNeedReason
	}
	leave, err := s.pendingForDecision(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	leave.Status = model.LeaveStatusRejected
	leave.ApprovedBy = &caller.EmployeeID
	leave.ApprovedAt = &now
	leave.RejectionReason = &reason
	leave.Audit(caller.EmployeeID)

	if err := s.transition(ctx, leave); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, Notice{
		EmployeeID:  leave.EmployeeID,
		Type:        model.NotificationLeaveRejected,
		Title:       "İzin talebiniz reddedildi",
		Content:     fmt.Sprintf("%s - %s tarihleri arasındaki izin talebiniz reddedildi. Gerekçe: %s", formatDate(leave.StartDate), formatDate(leave.EndDate), reason),
		RelatedType: "leave",
		RelatedID:   leave.LeaveID,
	})

	resp := toLeaveResponse(leave)
	return &resp, nil
}

// Cancel yalnızca talep sahibi bekleyen talebini iptal edebilir
func (s *leaveService) Cancel(ctx context.Context, id string, caller Caller) (*dto.LeaveResponse, error) {
	leave, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if leave.EmployeeID != caller.EmployeeID {
		return nil, ErrNoPermission
	}
	if leave.Status != model.LeaveStatusPending {
		return nil, ErrLeaveNotPending
	}

	leave.Status = model.LeaveStatusCancelled
	leave.Audit(caller.EmployeeID)

	if err := s.transition(ctx, leave); err != nil {
		return nil, err
	}
	resp := toLeaveResponse(leave)
	return &resp, nil
}

// ────────────────────── Balance ──────────────────────

func (s *leaveService) Balance(ctx context.Context, employeeID string, year int) (*dto.LeaveBalanceResponse, error) {
	if year <= 0 {
		year = time.Now().Year()
	}
	emp, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("çalışan sorgulanamadı", zap.String("id", employeeID), zap.Error(err))
		return nil, err
	}

	used, err := s.repo.Leave.SumApprovedDays(ctx, employeeID, model.LeaveTypeAnnual, year)
	if err != nil {
		s.logger.Error("kullanılan izin günleri hesaplanamadı", zap.Error(err))
		return nil, err
	}

	remaining := emp.AnnualLeaveDays - used
	if remaining < 0 {
		remaining = 0
	}
	return &dto.LeaveBalanceResponse{
		Year:          year,
		AnnualDays:    emp.AnnualLeaveDays,
		UsedDays:      used,
		RemainingDays: remaining,
	}, nil
}

// ── İç yardımcılar ──

func (s *leaveService) get(ctx context.Context, id string) (*model.Leave, error) {
	leave, err := s.repo.Leave.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveNotFound
		}
		s.logger.Error("izin sorgulanamadı", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return leave, nil
}

func (s *leaveService) pendingForDecision(ctx context.Context, id string, caller Caller) (*model.Leave, error) {
	leave, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if leave.EmployeeID == caller.EmployeeID {
		return nil, ErrLeaveSelfApproval
	}
	if leave.Status != model.LeaveStatusPending {
		return nil, ErrLeaveNotPending
	}
	return leave, nil
}

// transition durum değişikliğini yalnızca talep hâlâ bekliyorsa yazar
func (s *leaveService) transition(ctx context.Context, leave *model.Leave) error {
	if err := s.repo.Leave.UpdateStatus(ctx, leave, model.LeaveStatusPending); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return ErrLeaveNotPending
		}
		s.logger.Error("izin durumu güncellenemedi", zap.String("id", leave.LeaveID), zap.Error(err))
		return err
	}
	return nil
}

func (s *leaveService) checkAnnualBalance(ctx context.Context, emp *model.Employee, year, requested int) error {
	used, err := s.repo.Leave.SumApprovedDays(ctx, emp.EmployeeID, model.LeaveTypeAnnual, year)
	if err != nil {
		s.logger.Error("kullanılan izin günleri hesaplanamadı", zap.Error(err))
		return err
	}
	if used+requested > emp.AnnualLeaveDays {
		return ErrLeaveBalanceExceeded
	}
	return nil
}

func toLeaveResponses(leaves []model.Leave) []dto.LeaveResponse {
	list := make([]dto.LeaveResponse, 0, len(leaves))
	for i := range leaves {
		list = append(list, toLeaveResponse(&leaves[i]))
	}
	return list
}

func toLeaveResponse(l *model.Leave) dto.LeaveResponse {
	return dto.LeaveResponse{
		ID:              l.LeaveID,
		Employee:        employeeRef(l.Employee),
		EmployeeID:      l.EmployeeID,
		LeaveType:       l.LeaveType,
		StartDate:       formatDate(l.StartDate),
		EndDate:         formatDate(l.EndDate),
		TotalDays:       l.TotalDays,
		Reason:          l.Reason,
		Status:          l.Status,
		ApprovedBy:      derefString(l.ApprovedBy),
		ApprovedAt:      formatTimePtr(l.ApprovedAt),
		RejectionReason: derefString(l.RejectionReason),
		CreatedAt:       formatTime(l.CreatedAt),
	}
}
