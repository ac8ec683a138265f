package repository

import (
	"context"

	"gorm.io/gorm"

	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/pkg/database"
	pkgerrors "hr-intelligence/backend/pkg/errors"
)

// CompanyRepository şirket veri erişim arayüzü
type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	GetByID(ctx context.Context, id string) (*model.Company, error)
	GetByName(ctx context.Context, name string) (*model.Company, error)
	List(ctx context.Context) ([]model.Company, error)
	Update(ctx context.Context, company *model.Company) error
	Delete(ctx context.Context, id string, deletedBy string) error
	Count(ctx context.Context) (int64, error)
	CountDepartments(ctx context.Context, companyID string) (int64, error)
}

type companyRepo struct {
	db *gorm.DB
}

// NewCompanyRepo CompanyRepository örneği oluşturur
func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *model.Company) error {
	return database.MapError(r.db.WithContext(ctx).Create(company).Error)
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Where("company_id = ?", id).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepo) GetByName(ctx context.Context, name string) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepo) List(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&companies).Error
	return companies, err
}

func (r *companyRepo) Update(ctx context.Context, company *model.Company) error {
	oldVersion := company.Version
	result := r.db.WithContext(ctx).
		Model(company).
		Where("company_id = ? AND version = ?", company.CompanyID, oldVersion).
		Updates(map[string]interface{}{
			"name":       company.Name,
			"tax_number": company.TaxNumber,
			"address":    company.Address,
			"phone":      company.Phone,
			"email":      company.Email,
			"is_active":  company.IsActive,
			"updated_by": company.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return database.MapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	company.Version = oldVersion + 1
	return nil
}

func (r *companyRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return softDelete(ctx, r.db, &model.Company{}, "company_id", id, deletedBy)
}

func (r *companyRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Company{}).Count(&count).Error
	return count, err
}

func (r *companyRepo) CountDepartments(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Department{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}
