package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/pkg/database"
	pkgerrors "hr-intelligence/backend/pkg/errors"
)

// EmployeeFilter çalışan listeleme filtreleri. Limit 0 ise tüm kayıtlar döner.
type EmployeeFilter struct {
	DepartmentID string
	CompanyID    string
	Status       string
	Role         string
	Keyword      string
	Offset       int
	Limit        int
}

// DepartmentHeadcount departman başına aktif çalışan sayısı
type DepartmentHeadcount struct {
	DepartmentID   string
	DepartmentName string
	Count          int64
}

// EmployeeRepository çalışan veri erişim arayüzü
type EmployeeRepository interface {
	Create(ctx context.Context, emp *model.Employee) error
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	GetByEmail(ctx context.Context, email string) (*model.Employee, error)
	GetByNationalID(ctx context.Context, nationalID string) (*model.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]model.Employee, int64, error)
	ListActive(ctx context.Context) ([]model.Employee, error)
	Update(ctx context.Context, emp *model.Employee) error
	UpdatePassword(ctx context.Context, id string, hash string, mustChange bool) error
	Delete(ctx context.Context, id string, deletedBy string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	HeadcountByDepartment(ctx context.Context) ([]DepartmentHeadcount, error)
	CountHiredSince(ctx context.Context, since time.Time) (int64, error)
}

type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo EmployeeRepository örneği oluşturur
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, emp *model.Employee) error {
	return database.MapError(r.db.WithContext(ctx).Create(emp).Error)
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("employee_id = ?", id).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepo) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("LOWER(email) = LOWER(?)", email).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepo) GetByNationalID(ctx context.Context, nationalID string) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).
		Where("national_id = ?", nationalID).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepo) List(ctx context.Context, filter EmployeeFilter) ([]model.Employee, int64, error) {
	var emps []model.Employee
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Employee{})
	if filter.DepartmentID != "" {
		db = db.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.CompanyID != "" {
		db = db.Where("company_id = ?", filter.CompanyID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Role != "" {
		db = db.Where("role = ?", filter.Role)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		db = db.Where("(first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?)", like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := paginate(db.Preload("Department"), filter.Offset, filter.Limit).
		Order("first_name ASC, last_name ASC").
		Find(&emps).Error; err != nil {
		return nil, 0, err
	}

	return emps, total, nil
}

func (r *employeeRepo) ListActive(ctx context.Context) ([]model.Employee, error) {
	var emps []model.Employee
	err := r.db.WithContext(ctx).
		Where("status <> ?", model.EmployeeStatusTerminated).
		Order("first_name ASC, last_name ASC").
		Find(&emps).Error
	return emps, err
}

func (r *employeeRepo) Update(ctx context.Context, emp *model.Employee) error {
	oldVersion := emp.Version
	result := r.db.WithContext(ctx).
		Model(emp).
		Where("employee_id = ? AND version = ?", emp.EmployeeID, oldVersion).
		Updates(map[string]interface{}{
			"company_id":        emp.CompanyID,
			"department_id":     emp.DepartmentID,
			"first_name":        emp.FirstName,
			"last_name":         emp.LastName,
			"email":             emp.Email,
			"phone":             emp.Phone,
			"national_id":       emp.NationalID,
			"position":          emp.Position,
			"hire_date":         emp.HireDate,
			"gross_salary":      emp.GrossSalary,
			"status":            emp.Status,
			"role":              emp.Role,
			"annual_leave_days": emp.AnnualLeaveDays,
			"updated_by":        emp.UpdatedBy,
			"version":           oldVersion + 1,
		})
	if result.Error != nil {
		return database.MapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	emp.Version = oldVersion + 1
	return nil
}

func (r *employeeRepo) UpdatePassword(ctx context.Context, id string, hash string, mustChange bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("employee_id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":        hash,
			"must_change_password": mustChange,
			"version":              gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *employeeRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return softDelete(ctx, r.db, &model.Employee{}, "employee_id", id, deletedBy)
}

func (r *employeeRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// HeadcountByDepartment işten ayrılmamış çalışanları departmana göre sayar
func (r *employeeRepo) HeadcountByDepartment(ctx context.Context) ([]DepartmentHeadcount, error) {
	var rows []DepartmentHeadcount
	err := r.db.WithContext(ctx).
		Table("departments d").
		Select("d.department_id, d.name AS department_name, COUNT(e.employee_id) AS count").
		Joins("LEFT JOIN employees e ON e.department_id = d.department_id AND e.deleted_at IS NULL AND e.status <> ?", model.EmployeeStatusTerminated).
		Where("d.deleted_at IS NULL AND d.is_active = ?", true).
		Group("d.department_id, d.name").
		Order("d.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *employeeRepo) CountHiredSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("hire_date >= ?", since).
		Count(&count).Error
	return count, err
}
