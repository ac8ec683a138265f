package repository

import (
	"context"

	"gorm.io/gorm"

	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/pkg/database"
	pkgerrors "hr-intelligence/backend/pkg/errors"
)

// DepartmentRepository departman veri erişim arayüzü
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	GetByID(ctx context.Context, id string) (*model.Department, error)
	GetByName(ctx context.Context, companyID *string, name string) (*model.Department, error)
	List(ctx context.Context) ([]model.Department, error)
	ListAll(ctx context.Context) ([]model.Department, error)
	Update(ctx context.Context, dept *model.Department) error
	Delete(ctx context.Context, id string, deletedBy string) error
	CountMembers(ctx context.Context, departmentID string) (int64, error)
	CountMembersBatch(ctx context.Context, departmentIDs []string) (map[string]int64, error)
	Count(ctx context.Context) (int64, error)
}

type departmentRepo struct {
	db *gorm.DB
}

// NewDepartmentRepo DepartmentRepository örneği oluşturur
func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) Create(ctx context.Context, dept *model.Department) error {
	return database.MapError(r.db.WithContext(ctx).Create(dept).Error)
}

func (r *departmentRepo) GetByID(ctx context.Context, id string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Where("department_id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// GetByName aynı şirket içinde ada göre arar (büyük/küçük harf duyarsız)
func (r *departmentRepo) GetByName(ctx context.Context, companyID *string, name string) (*model.Department, error) {
	var dept model.Department
	q := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name)
	if companyID != nil {
		q = q.Where("company_id = ?", *companyID)
	} else {
		q = q.Where("company_id IS NULL")
	}
	if err := q.First(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) List(ctx context.Context) ([]model.Department, error) {
	var depts []model.Department
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *departmentRepo) ListAll(ctx context.Context) ([]model.Department, error) {
	var depts []model.Department
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *departmentRepo) Update(ctx context.Context, dept *model.Department) error {
	oldVersion := dept.Version
	result := r.db.WithContext(ctx).
		Model(dept).
		Where("department_id = ? AND version = ?", dept.DepartmentID, oldVersion).
		Updates(map[string]interface{}{
			"company_id":  dept.CompanyID,
			"name":        dept.Name,
			"description": dept.Description,
			"manager_id":  dept.ManagerID,
			"is_active":   dept.IsActive,
			"updated_by":  dept.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return database.MapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	dept.Version = oldVersion + 1
	return nil
}

func (r *departmentRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return softDelete(ctx, r.db, &model.Department{}, "department_id", id, deletedBy)
}

func (r *departmentRepo) CountMembers(ctx context.Context, departmentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count, err
}

// CountMembersBatch tek sorguda birden çok departmanın çalışan sayısını döner
func (r *departmentRepo) CountMembersBatch(ctx context.Context, departmentIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(departmentIDs))
	if len(departmentIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		DepartmentID string
		Count        int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Select("department_id, COUNT(*) AS count").
		Where("department_id IN ?", departmentIDs).
		Group("department_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.DepartmentID] = row.Count
	}
	return counts, nil
}

func (r *departmentRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Department{}).Count(&count).Error
	return count, err
}
