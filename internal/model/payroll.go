package model

import "time"

// Bordro durumları
const (
	PayrollStatusDraft    = "draft"
	PayrollStatusApproved = "approved"
	PayrollStatusPaid     = "paid"
)

// Payroll bordro tablosu — payrolls (çalışan + dönem başına tek kayıt)
type Payroll struct {
	PayrollID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"payroll_id"`
	EmployeeID   string     `gorm:"type:uuid;not null"                             json:"employee_id"`
	PeriodYear   int        `gorm:"not null"                                       json:"period_year"`
	PeriodMonth  int        `gorm:"not null"                                       json:"period_month"`
	GrossSalary  float64    `gorm:"type:numeric(12,2);not null"                    json:"gross_salary"`
	Bonus        float64    `gorm:"type:numeric(12,2);not null;default:0"          json:"bonus"`
	Deductions   float64    `gorm:"type:numeric(12,2);not null;default:0"          json:"deductions"`
	SGKEmployee  float64    `gorm:"column:sgk_employee;type:numeric(12,2)"         json:"sgk_employee"`
	Unemployment float64    `gorm:"type:numeric(12,2)"                             json:"unemployment"`
	IncomeTax    float64    `gorm:"type:numeric(12,2)"                             json:"income_tax"`
	StampTax     float64    `gorm:"type:numeric(12,2)"                             json:"stamp_tax"`
	NetSalary    float64    `gorm:"type:numeric(12,2)"                             json:"net_salary"`
	Currency     string     `gorm:"type:varchar(3);not null;default:'TRY'"         json:"currency"`
	Status       string     `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	ApprovedBy   *string    `gorm:"type:uuid"                                      json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `                                                      json:"approved_at,omitempty"`
	PaidAt       *time.Time `                                                      json:"paid_at,omitempty"`
	BaseModel
	Version int `gorm:"not null;default:1" json:"version"`

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName tablo adı
func (Payroll) TableName() string { return "payrolls" }
