package model

import "time"

// İzin türleri
const (
	LeaveTypeAnnual    = "annual"
	LeaveTypeSick      = "sick"
	LeaveTypeMaternity = "maternity"
	LeaveTypePaternity = "paternity"
	LeaveTypeUnpaid    = "unpaid"
	LeaveTypeExcuse    = "excuse"
)

// İzin durumları
const (
	LeaveStatusPending   = "pending"
	LeaveStatusApproved  = "approved"
	LeaveStatusRejected  = "rejected"
	LeaveStatusCancelled = "cancelled"
)

// Leave izin talebi tablosu — leaves
type Leave struct {
	LeaveID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"leave_id"`
	EmployeeID      string     `gorm:"type:uuid;not null"                             json:"employee_id"`
	LeaveType       string     `gorm:"type:varchar(20);not null"                      json:"leave_type"`
	StartDate       time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate         time.Time  `gorm:"type:date;not null"                             json:"end_date"`
	TotalDays       int        `gorm:"not null"                                       json:"total_days"`
	Reason          string     `gorm:"type:text"                                      json:"reason,omitempty"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	ApprovedBy      *string    `gorm:"type:uuid"                                      json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `                                                      json:"approved_at,omitempty"`
	RejectionReason *string    `gorm:"type:text"                                      json:"rejection_reason,omitempty"`
	SoftDeleteModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName tablo adı
func (Leave) TableName() string { return "leaves" }
