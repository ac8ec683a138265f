package repository

import (
	"context"

	"gorm.io/gorm"

	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/pkg/database"
	pkgerrors "hr-intelligence/backend/pkg/errors"
)

// PayrollFilter bordro listeleme filtreleri
type PayrollFilter struct {
	Year         int
	Month        int
	EmployeeID   string
	Status       string
	ExcludeDraft bool
	Offset       int
	Limit        int
}

// PayrollTotals bir dönemin bordro toplamları
type PayrollTotals struct {
	Count        int64
	Gross        float64
	Bonus        float64
	Deductions   float64
	SGKEmployee  float64
	Unemployment float64
	IncomeTax    float64
	StampTax     float64
	Net          float64
}

// PayrollRepository bordro veri erişim arayüzü
type PayrollRepository interface {
	Create(ctx context.Context, payroll *model.Payroll) error
	GetByID(ctx context.Context, id string) (*model.Payroll, error)
	List(ctx context.Context, filter PayrollFilter) ([]model.Payroll, int64, error)
	Update(ctx context.Context, payroll *model.Payroll) error
	ListEmployeeIDsForPeriod(ctx context.Context, year, month int) ([]string, error)
	LatestForEmployee(ctx context.Context, employeeID string) (*model.Payroll, error)
	Totals(ctx context.Context, year, month int) (*PayrollTotals, error)
}

type payrollRepo struct {
	db *gorm.DB
}

// NewPayrollRepo PayrollRepository örneği oluşturur
func NewPayrollRepo(db *gorm.DB) PayrollRepository {
	return &payrollRepo{db: db}
}

func (r *payrollRepo) Create(ctx context.Context, payroll *model.Payroll) error {
	return database.MapError(r.db.WithContext(ctx).Create(payroll).Error)
}

func (r *payrollRepo) GetByID(ctx context.Context, id string) (*model.Payroll, error) {
	var p model.Payroll
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("payroll_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *payrollRepo) List(ctx context.Context, filter PayrollFilter) ([]model.Payroll, int64, error) {
	var payrolls []model.Payroll
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Payroll{})
	if filter.Year > 0 {
		db = db.Where("period_year = ?", filter.Year)
	}
	if filter.Month > 0 {
		db = db.Where("period_month = ?", filter.Month)
	}
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.ExcludeDraft {
		db = db.Where("status <> ?", model.PayrollStatusDraft)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := paginate(db.Preload("Employee"), filter.Offset, filter.Limit).
		Order("period_year DESC, period_month DESC, created_at ASC").
		Find(&payrolls).Error; err != nil {
		return nil, 0, err
	}
	return payrolls, total, nil
}

func (r *payrollRepo) Update(ctx context.Context, payroll *model.Payroll) error {
	oldVersion := payroll.Version
	result := r.db.WithContext(ctx).
		Model(payroll).
		Where("payroll_id = ? AND version = ?", payroll.PayrollID, oldVersion).
		Updates(map[string]interface{}{
			"gross_salary": payroll.GrossSalary,
			"bonus":        payroll.Bonus,
			"deductions":   payroll.Deductions,
			"sgk_employee": payroll.SGKEmployee,
			"unemployment": payroll.Unemployment,
			"income_tax":   payroll.IncomeTax,
			"stamp_tax":    payroll.StampTax,
			"net_salary":   payroll.NetSalary,
			"status":       payroll.Status,
			"approved_by":  payroll.ApprovedBy,
			"approved_at":  payroll.ApprovedAt,
			"paid_at":      payroll.PaidAt,
			"updated_by":   payroll.UpdatedBy,
			"version":      oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	payroll.Version = oldVersion + 1
	return nil
}

func (r *payrollRepo) ListEmployeeIDsForPeriod(ctx context.Context, year, month int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Payroll{}).
		Where("period_year = ? AND period_month = ?", year, month).
		Pluck("employee_id", &ids).Error
	return ids, err
}

func (r *payrollRepo) LatestForEmployee(ctx context.Context, employeeID string) (*model.Payroll, error) {
	var p model.Payroll
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("period_year DESC, period_month DESC").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *payrollRepo) Totals(ctx context.Context, year, month int) (*PayrollTotals, error) {
	var totals PayrollTotals
	err := r.db.WithContext(ctx).
		Model(&model.Payroll{}).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(gross_salary), 0) AS gross,
			COALESCE(SUM(bonus), 0) AS bonus,
			COALESCE(SUM(deductions), 0) AS deductions,
			COALESCE(SUM(sgk_employee), 0) AS sgk_employee,
			COALESCE(SUM(unemployment), 0) AS unemployment,
			COALESCE(SUM(income_tax), 0) AS income_tax,
			COALESCE(SUM(stamp_tax), 0) AS stamp_tax,
			COALESCE(SUM(net_salary), 0) AS net`).
		Where("period_year = ? AND period_month = ?", year, month).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
