package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNoDatabase veritabanı bağlantısı olmadan işlem açılmaya çalışıldı
var ErrNoDatabase = errors.New("veritabanı bağlantısı yok")

// Repository tüm Repository'lerin toplu giriş noktası
type Repository struct {
	db *gorm.DB

	Company        CompanyRepository
	Department     DepartmentRepository
	Employee       EmployeeRepository
	Leave          LeaveRepository
	Payroll        PayrollRepository
	Performance    PerformanceRepository
	Training       TrainingRepository
	Enrollment     EnrollmentRepository
	Notification   NotificationRepository
	Message        MessageRepository
	Document       DocumentRepository
	JobPosting     JobPostingRepository
	JobApplication JobApplicationRepository
}

// NewRepository Repository toplamını oluşturur
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:             db,
		Company:        NewCompanyRepo(db),
		Department:     NewDepartmentRepo(db),
		Employee:       NewEmployeeRepo(db),
		Leave:          NewLeaveRepo(db),
		Payroll:        NewPayrollRepo(db),
		Performance:    NewPerformanceRepo(db),
		Training:       NewTrainingRepo(db),
		Enrollment:     NewEnrollmentRepo(db),
		Notification:   NewNotificationRepo(db),
		Message:        NewMessageRepo(db),
		Document:       NewDocumentRepo(db),
		JobPosting:     NewJobPostingRepo(db),
		JobApplication: NewJobApplicationRepo(db),
	}
}

// BeginTx yeni bir işlem başlatır. Bağlantısız (test) toplamlarda (nil, nil) döner;
// çağıran taraf tx != nil kontrolüyle Commit/Rollback yapar.
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx işlem bağlantısına bağlı yeni bir toplam döner. tx nil ise kendisini döner.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Ping veritabanı erişilebilirliğini kontrol eder (/ready)
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return ErrNoDatabase
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// softDelete yumuşak silme alanlarını doldurur
func softDelete(ctx context.Context, db *gorm.DB, m interface{}, idColumn, id, deletedBy string) error {
	updates := map[string]interface{}{
		"deleted_at": gorm.Expr("NOW()"),
	}
	if deletedBy != "" {
		updates["deleted_by"] = deletedBy
	}
	result := db.WithContext(ctx).
		Model(m).
		Where(idColumn+" = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// paginate limit > 0 ise sayfalama uygular
func paginate(db *gorm.DB, offset, limit int) *gorm.DB {
	if limit > 0 {
		db = db.Offset(offset).Limit(limit)
	}
	return db
}
