package repository

import (
	"context"

	"gorm.io/gorm"

	"hr-intelligence/backend/internal/model"
)

// DocumentFilter belge listeleme filtreleri.
// VisibleTo doluysa yalnızca o çalışanın belgeleri ve şirket politikaları döner.
type DocumentFilter struct {
	EmployeeID string
	Category   string
	VisibleTo  string
	Offset     int
	Limit      int
}

// DocumentRepository belge veri erişim arayüzü
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	GetByID(ctx context.Context, id string) (*model.Document, error)
	List(ctx context.Context, filter DocumentFilter) ([]model.Document, int64, error)
	Delete(ctx context.Context, id string, deletedBy string) error
}

type documentRepo struct {
	db *gorm.DB
}

// NewDocumentRepo DocumentRepository örneği oluşturur
func NewDocumentRepo(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *model.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (*model.Document, error) {
	var doc model.Document
	err := r.db.WithContext(ctx).
		Where("document_id = ?", id).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, filter DocumentFilter) ([]model.Document, int64, error) {
	var docs []model.Document
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Document{})
	if filter.VisibleTo != "" {
		db = db.Where("(employee_id = ? OR category = ?)", filter.VisibleTo, model.DocumentCategoryPolicy)
	}
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(db, filter.Offset, filter.Limit).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (r *documentRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return softDelete(ctx, r.db, &model.Document{}, "document_id", id, deletedBy)
}
