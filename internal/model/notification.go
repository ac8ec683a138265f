package model

// Bildirim türleri
const (
	NotificationLeaveApproved     = "leave_approved"
	NotificationLeaveRejected     = "leave_rejected"
	NotificationLeaveRequested    = "leave_requested"
	NotificationPayrollPaid       = "payroll_paid"
	NotificationReviewFinalized   = "review_finalized"
	NotificationTrainingEnrolled  = "training_enrolled"
	NotificationMessageReceived   = "message_received"
	NotificationApplicationUpdate = "application_update"
)

// Notification bildirim tablosu — notifications
type Notification struct {
	NotificationID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	EmployeeID     string  `gorm:"type:uuid;not null"                             json:"employee_id"`
	Type           string  `gorm:"type:varchar(50);not null"                      json:"type"`
	Title          string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string  `gorm:"type:text;not null"                             json:"content"`
	IsRead         bool    `gorm:"not null;default:false"                         json:"is_read"`
	RelatedType    *string `gorm:"type:varchar(30)"                               json:"related_type,omitempty"` // leave | payroll | review | training | message | job_application
	RelatedID      *string `gorm:"type:uuid"                                      json:"related_id,omitempty"`
	SoftDeleteModel
}

// TableName tablo adı
func (Notification) TableName() string { return "notifications" }
