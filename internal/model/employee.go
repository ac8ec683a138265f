package model

import "time"

// Roller
const (
	RoleAdmin     = "admin"
	RoleHRManager = "hr_manager"
	RoleEmployee  = "employee"
)

// Çalışan durumları
const (
	EmployeeStatusActive     = "active"
	EmployeeStatusOnLeave    = "on_leave"
	EmployeeStatusTerminated = "terminated"
)

// Employee çalışan tablosu — employees. Çalışanlar aynı zamanda sisteme giriş yapan kullanıcılardır.
type Employee struct {
	EmployeeID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	CompanyID          *string   `gorm:"type:uuid"                                      json:"company_id,omitempty"`
	DepartmentID       *string   `gorm:"type:uuid"                                      json:"department_id,omitempty"`
	FirstName          string    `gorm:"type:varchar(50);not null"                      json:"first_name"`
	LastName           string    `gorm:"type:varchar(50);not null"                      json:"last_name"`
	Email              string    `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone              string    `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	NationalID         *string   `gorm:"type:varchar(11)"                               json:"national_id,omitempty"`
	Position           string    `gorm:"type:varchar(100)"                              json:"position,omitempty"`
	HireDate           time.Time `gorm:"type:date;not null"                             json:"hire_date"`
	GrossSalary        float64   `gorm:"type:numeric(12,2);not null;default:0"          json:"gross_salary"`
	Status             string    `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	Role               string    `gorm:"type:varchar(20);not null;default:'employee'"   json:"role"`
	PasswordHash       string    `gorm:"type:varchar(255);not null"                     json:"-"`
	MustChangePassword bool      `gorm:"not null;default:false"                         json:"must_change_password"`
	AnnualLeaveDays    int       `gorm:"not null;default:14"                            json:"annual_leave_days"`
	VersionedModel

	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
	Company    *Company    `gorm:"foreignKey:CompanyID;references:CompanyID"       json:"company,omitempty"`
}

// TableName tablo adı
func (Employee) TableName() string { return "employees" }

// FullName ad soyad
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
