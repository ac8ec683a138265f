package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/pkg/database"
)

// PostingFilter ilan listeleme filtreleri
type PostingFilter struct {
	Status       string
	DepartmentID string
	Offset       int
	Limit        int
}

// ApplicationFilter başvuru listeleme filtreleri
type ApplicationFilter struct {
	JobPostingID string
	Status       string
	Offset       int
	Limit        int
}

// JobPostingRepository iş ilanı veri erişim arayüzü
type JobPostingRepository interface {
	Create(ctx context.Context, posting *model.JobPosting) error
	GetByID(ctx context.Context, id string) (*model.JobPosting, error)
	List(ctx context.Context, filter PostingFilter) ([]model.JobPosting, int64, error)
	Update(ctx context.Context, posting *model.JobPosting) error
	Delete(ctx context.Context, id string, deletedBy string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// JobApplicationRepository iş başvurusu veri erişim arayüzü
type JobApplicationRepository interface {
	Create(ctx context.Context, app *model.JobApplication) error
	GetByID(ctx context.Context, id string) (*model.JobApplication, error)
	List(ctx context.Context, filter ApplicationFilter) ([]model.JobApplication, int64, error)
	Update(ctx context.Context, app *model.JobApplication) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// ── JobPosting Repository ──

type jobPostingRepo struct {
	db *gorm.DB
}

// NewJobPostingRepo JobPostingRepository örneği oluşturur
func NewJobPostingRepo(db *gorm.DB) JobPostingRepository {
	return &jobPostingRepo{db: db}
}

func (r *jobPostingRepo) Create(ctx context.Context, posting *model.JobPosting) error {
	return database.MapError(r.db.WithContext(ctx).Create(posting).Error)
}

func (r *jobPostingRepo) GetByID(ctx context.Context, id string) (*model.JobPosting, error) {
	var p model.JobPosting
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("job_posting_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *jobPostingRepo) List(ctx context.Context, filter PostingFilter) ([]model.JobPosting, int64, error) {
	var list []model.JobPosting
	var total int64

	db := r.db.WithContext(ctx).Model(&model.JobPosting{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.DepartmentID != "" {
		db = db.Where("department_id = ?", filter.DepartmentID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(db.Preload("Department"), filter.Offset, filter.Limit).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *jobPostingRepo) Update(ctx context.Context, posting *model.JobPosting) error {
	return database.MapError(r.db.WithContext(ctx).Omit(clause.Associations).Save(posting).Error)
}

func (r *jobPostingRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return softDelete(ctx, r.db, &model.JobPosting{}, "job_posting_id", id, deletedBy)
}

func (r *jobPostingRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.JobPosting{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// ── JobApplication Repository ──

type jobApplicationRepo struct {
	db *gorm.DB
}

// NewJobApplicationRepo JobApplicationRepository örneği oluşturur
func NewJobApplicationRepo(db *gorm.DB) JobApplicationRepository {
	return &jobApplicationRepo{db: db}
}

func (r *jobApplicationRepo) Create(ctx context.Context, app *model.JobApplication) error {
	return database.MapError(r.db.WithContext(ctx).Create(app).Error)
}

func (r *jobApplicationRepo) GetByID(ctx context.Context, id string) (*model.JobApplication, error) {
	var app model.JobApplication
	err := r.db.WithContext(ctx).
		Preload("JobPosting").
		Where("application_id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *jobApplicationRepo) List(ctx context.Context, filter ApplicationFilter) ([]model.JobApplication, int64, error) {
	var list []model.JobApplication
	var total int64

	db := r.db.WithContext(ctx).Model(&model.JobApplication{})
	if filter.JobPostingID != "" {
		db = db.Where("job_posting_id = ?", filter.JobPostingID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(db.Preload("JobPosting"), filter.Offset, filter.Limit).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *jobApplicationRepo) Update(ctx context.Context, app *model.JobApplication) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(app).Error
}

func (r *jobApplicationRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.JobApplication{}).
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
