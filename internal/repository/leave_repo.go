package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/pkg/database"
	pkgerrors "hr-intelligence/backend/pkg/errors"
)

// LeaveFilter izin listeleme filtreleri
type LeaveFilter struct {
	EmployeeID string
	Status     string
	LeaveType  string
	Offset     int
	Limit      int
}

// LeaveRepository izin veri erişim arayüzü
type LeaveRepository interface {
	Create(ctx context.Context, leave *model.Leave) error
	GetByID(ctx context.Context, id string) (*model.Leave, error)
	List(ctx context.Context, filter LeaveFilter) ([]model.Leave, int64, error)
	ListPending(ctx context.Context) ([]model.Leave, error)
	// UpdateStatus yalnızca kayıt hâlâ fromStatus durumundaysa günceller
	UpdateStatus(ctx context.Context, leave *model.Leave, fromStatus string) error
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	SumApprovedDays(ctx context.Context, employeeID, leaveType string, year int) (int, error)
	CountPending(ctx context.Context, employeeID string) (int64, error)
	CountOnLeave(ctx context.Context, day time.Time) (int64, error)
}

type leaveRepo struct {
	db *gorm.DB
}

// NewLeaveRepo LeaveRepository örneği oluşturur
func NewLeaveRepo(db *gorm.DB) LeaveRepository {
	return &leaveRepo{db: db}
}

func (r *leaveRepo) Create(ctx context.Context, leave *model.Leave) error {
	return database.MapError(r.db.WithContext(ctx).Create(leave).Error)
}

func (r *leaveRepo) GetByID(ctx context.Context, id string) (*model.Leave, error) {
	var leave model.Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("leave_id = ?", id).
		First(&leave).Error
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepo) List(ctx context.Context, filter LeaveFilter) ([]model.Leave, int64, error) {
	var leaves []model.Leave
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Leave{})
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.LeaveType != "" {
		db = db.Where("leave_type = ?", filter.LeaveType)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := paginate(db.Preload("Employee"), filter.Offset, filter.Limit).
		Order("start_date DESC, created_at DESC").
		Find(&leaves).Error; err != nil {
		return nil, 0, err
	}
	return leaves, total, nil
}

func (r *leaveRepo) ListPending(ctx context.Context) ([]model.Leave, error) {
	var leaves []model.Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("status = ?", model.LeaveStatusPending).
		Order("created_at ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *leaveRepo) UpdateStatus(ctx context.Context, leave *model.Leave, fromStatus string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Leave{}).
		Where("leave_id = ? AND status = ?", leave.LeaveID, fromStatus).
		Updates(map[string]interface{}{
			"status":           leave.Status,
			"approved_by":      leave.ApprovedBy,
			"approved_at":      leave.ApprovedAt,
			"rejection_reason": leave.RejectionReason,
			"updated_by":       leave.UpdatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

// HasOverlap bekleyen veya onaylı başka bir izinle tarih çakışması olup olmadığını döner
func (r *leaveRepo) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Leave{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{model.LeaveStatusPending, model.LeaveStatusApproved}).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&count).Error
	return count > 0, err
}

func (r *leaveRepo) SumApprovedDays(ctx context.Context, employeeID, leaveType string, year int) (int, error) {
	var sum int
	err := r.db.WithContext(ctx).
		Model(&model.Leave{}).
		Select("COALESCE(SUM(total_days), 0)").
		Where("employee_id = ? AND leave_type = ? AND status = ?", employeeID, leaveType, model.LeaveStatusApproved).
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Scan(&sum).Error
	return sum, err
}

// CountPending employeeID boşsa tüm bekleyen izinleri sayar
func (r *leaveRepo) CountPending(ctx context.Context, employeeID string) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&model.Leave{}).
		Where("status = ?", model.LeaveStatusPending)
	if employeeID != "" {
		db = db.Where("employee_id = ?", employeeID)
	}
	err := db.Count(&count).Error
	return count, err
}

func (r *leaveRepo) CountOnLeave(ctx context.Context, day time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Leave{}).
		Where("status = ? AND start_date <= ? AND end_date >= ?", model.LeaveStatusApproved, day, day).
		Distinct("employee_id").
		Count(&count).Error
	return count, err
}
