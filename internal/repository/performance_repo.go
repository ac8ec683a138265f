package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/pkg/database"
)

// ReviewFilter değerlendirme listeleme filtreleri
type ReviewFilter struct {
	EmployeeID string
	ReviewerID string
	Period     string
	Status     string
	Offset     int
	Limit      int
}

// DepartmentScore departman bazında puan toplamı ve adedi
type DepartmentScore struct {
	DepartmentID   string
	DepartmentName string
	Total          float64
	Count          int64
}

// PerformanceRepository performans değerlendirme veri erişim arayüzü
type PerformanceRepository interface {
	Create(ctx context.Context, review *model.PerformanceReview) error
	GetByID(ctx context.Context, id string) (*model.PerformanceReview, error)
	List(ctx context.Context, filter ReviewFilter) ([]model.PerformanceReview, int64, error)
	Update(ctx context.Context, review *model.PerformanceReview) error
	Delete(ctx context.Context, id string, deletedBy string) error
	ScoresByDepartment(ctx context.Context) ([]DepartmentScore, error)
	LatestForEmployee(ctx context.Context, employeeID string) (*model.PerformanceReview, error)
}

type performanceRepo struct {
	db *gorm.DB
}

// NewPerformanceRepo PerformanceRepository örneği oluşturur
func NewPerformanceRepo(db *gorm.DB) PerformanceRepository {
	return &performanceRepo{db: db}
}

func (r *performanceRepo) Create(ctx context.Context, review *model.PerformanceReview) error {
	return database.MapError(r.db.WithContext(ctx).Create(review).Error)
}

func (r *performanceRepo) GetByID(ctx context.Context, id string) (*model.PerformanceReview, error) {
	var review model.PerformanceReview
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Reviewer").
		Where("review_id = ?", id).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *performanceRepo) List(ctx context.Context, filter ReviewFilter) ([]model.PerformanceReview, int64, error) {
	var reviews []model.PerformanceReview
	var total int64

	db := r.db.WithContext(ctx).Model(&model.PerformanceReview{})
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.ReviewerID != "" {
		db = db.Where("reviewer_id = ?", filter.ReviewerID)
	}
	if filter.Period != "" {
		db = db.Where("period = ?", filter.Period)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := paginate(db.Preload("Employee").Preload("Reviewer"), filter.Offset, filter.Limit).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *performanceRepo) Update(ctx context.Context, review *model.PerformanceReview) error {
	return database.MapError(r.db.WithContext(ctx).Omit(clause.Associations).Save(review).Error)
}

func (r *performanceRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return softDelete(ctx, r.db, &model.PerformanceReview{}, "review_id", id, deletedBy)
}

// ScoresByDepartment taslak olmayan değerlendirmelerin puanlarını departmana göre toplar.
// Silinmiş çalışanların değerlendirmeleri sayılmaz. Departmanı olmayan çalışanlar boş DepartmentID ile döner.
func (r *performanceRepo) ScoresByDepartment(ctx context.Context) ([]DepartmentScore, error) {
	var rows []DepartmentScore
	err := r.db.WithContext(ctx).
		Table("performance_reviews pr").
		Select("COALESCE(d.department_id::text, '') AS department_id, COALESCE(d.name, '') AS department_name, SUM(pr.score) AS total, COUNT(*) AS count").
		Joins("JOIN employees e ON e.employee_id = pr.employee_id AND e.deleted_at IS NULL").
		Joins("LEFT JOIN departments d ON d.department_id = e.department_id").
		Where("pr.deleted_at IS NULL AND pr.status <> ?", model.ReviewStatusDraft).
		Group("d.department_id, d.name").
		Order("department_name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *performanceRepo) LatestForEmployee(ctx context.Context, employeeID string) (*model.PerformanceReview, error) {
	var review model.PerformanceReview
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status = ?", employeeID, model.ReviewStatusFinalized).
		Order("finalized_at DESC").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}
