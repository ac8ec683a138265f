package model

// Belge kategorileri
const (
	DocumentCategoryContract    = "contract"
	DocumentCategoryPayslip     = "payslip"
	DocumentCategoryCertificate = "certificate"
	DocumentCategoryPolicy      = "policy"
	DocumentCategoryIdentity    = "identity"
	DocumentCategoryOther       = "other"
)

// Document belge tablosu — documents. Dosyanın kendisi disktedir.
type Document struct {
	DocumentID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"document_id"`
	EmployeeID  *string `gorm:"type:uuid"                                      json:"employee_id,omitempty"`
	Title       string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Category    string  `gorm:"type:varchar(20);not null"                      json:"category"`
	FileName    string  `gorm:"type:varchar(255);not null"                     json:"file_name"`
	StorageName string  `gorm:"type:varchar(255);not null"                     json:"-"`
	MimeType    string  `gorm:"type:varchar(100);not null"                     json:"mime_type"`
	SizeBytes   int64   `gorm:"not null"                                       json:"size_bytes"`
	SoftDeleteModel
}

// TableName tablo adı
func (Document) TableName() string { return "documents" }
