package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/pkg/database"
)

// TrainingFilter eğitim listeleme filtreleri
type TrainingFilter struct {
	Status string
	Offset int
	Limit  int
}

// TrainingRepository eğitim veri erişim arayüzü
type TrainingRepository interface {
	Create(ctx context.Context, training *model.Training) error
	GetByID(ctx context.Context, id string) (*model.Training, error)
	// LockByID satırı işlem sonuna kadar kilitler (kontenjan kontrolü)
	LockByID(ctx context.Context, id string) (*model.Training, error)
	List(ctx context.Context, filter TrainingFilter) ([]model.Training, int64, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]model.Training, error)
	Update(ctx context.Context, training *model.Training) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// EnrollmentRepository eğitim katılım veri erişim arayüzü
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.TrainingEnrollment) error
	GetByID(ctx context.Context, id string) (*model.TrainingEnrollment, error)
	GetByTrainingAndEmployee(ctx context.Context, trainingID, employeeID string) (*model.TrainingEnrollment, error)
	ListByTraining(ctx context.Context, trainingID string) ([]model.TrainingEnrollment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]model.TrainingEnrollment, error)
	CountActiveByTraining(ctx context.Context, trainingID string) (int64, error)
	CountActiveByEmployee(ctx context.Context, employeeID string) (int64, error)
	Update(ctx context.Context, enrollment *model.TrainingEnrollment) error
}

// ── Training Repository ──

type trainingRepo struct {
	db *gorm.DB
}

// NewTrainingRepo TrainingRepository örneği oluşturur
func NewTrainingRepo(db *gorm.DB) TrainingRepository {
	return &trainingRepo{db: db}
}

func (r *trainingRepo) Create(ctx context.Context, training *model.Training) error {
	return database.MapError(r.db.WithContext(ctx).Create(training).Error)
}

func (r *trainingRepo) GetByID(ctx context.Context, id string) (*model.Training, error) {
	var t model.Training
	err := r.db.WithContext(ctx).
		Where("training_id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *trainingRepo) LockByID(ctx context.Context, id string) (*model.Training, error) {
	var t model.Training
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("training_id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *trainingRepo) List(ctx context.Context, filter TrainingFilter) ([]model.Training, int64, error) {
	var trainings []model.Training
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Training{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(db, filter.Offset, filter.Limit).
		Order("start_date ASC").
		Find(&trainings).Error; err != nil {
		return nil, 0, err
	}
	return trainings, total, nil
}

func (r *trainingRepo) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]model.Training, error) {
	var trainings []model.Training
	err := r.db.WithContext(ctx).
		Where("start_date >= ? AND status = ?", from, model.TrainingStatusPlanned).
		Order("start_date ASC").
		Limit(limit).
		Find(&trainings).Error
	return trainings, err
}

func (r *trainingRepo) Update(ctx context.Context, training *model.Training) error {
	return database.MapError(r.db.WithContext(ctx).Omit(clause.Associations).Save(training).Error)
}

func (r *trainingRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return softDelete(ctx, r.db, &model.Training{}, "training_id", id, deletedBy)
}

// ── Enrollment Repository ──

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo EnrollmentRepository örneği oluşturur
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) Create(ctx context.Context, enrollment *model.TrainingEnrollment) error {
	return database.MapError(r.db.WithContext(ctx).Create(enrollment).Error)
}

func (r *enrollmentRepo) GetByID(ctx context.Context, id string) (*model.TrainingEnrollment, error) {
	var e model.TrainingEnrollment
	err := r.db.WithContext(ctx).
		Preload("Training").
		Preload("Employee").
		Where("enrollment_id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *enrollmentRepo) GetByTrainingAndEmployee(ctx context.Context, trainingID, employeeID string) (*model.TrainingEnrollment, error) {
	var e model.TrainingEnrollment
	err := r.db.WithContext(ctx).
		Where("training_id = ? AND employee_id = ?", trainingID, employeeID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *enrollmentRepo) ListByTraining(ctx context.Context, trainingID string) ([]model.TrainingEnrollment, error) {
	var list []model.TrainingEnrollment
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("training_id = ?", trainingID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *enrollmentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]model.TrainingEnrollment, error) {
	var list []model.TrainingEnrollment
	err := r.db.WithContext(ctx).
		Preload("Training").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *enrollmentRepo) CountActiveByTraining(ctx context.Context, trainingID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TrainingEnrollment{}).
		Where("training_id = ? AND status <> ?", trainingID, model.EnrollmentStatusCancelled).
		Count(&count).Error
	return count, err
}

func (r *enrollmentRepo) CountActiveByEmployee(ctx context.Context, employeeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TrainingEnrollment{}).
		Where("employee_id = ? AND status = ?", employeeID, model.EnrollmentStatusEnrolled).
		Count(&count).Error
	return count, err
}

func (r *enrollmentRepo) Update(ctx context.Context, enrollment *model.TrainingEnrollment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(enrollment).Error
}
