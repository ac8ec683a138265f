package model

// Department departman tablosu — departments
type Department struct {
	DepartmentID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"department_id"`
	CompanyID    *string `gorm:"type:uuid"                                      json:"company_id,omitempty"`
	Name         string  `gorm:"type:varchar(50);not null"                      json:"name"`
	Description  string  `gorm:"type:text"                                      json:"description,omitempty"`
	ManagerID    *string `gorm:"type:uuid"                                      json:"manager_id,omitempty"`
	IsActive     bool    `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	Company *Company  `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
	Manager *Employee `gorm:"foreignKey:ManagerID;references:EmployeeID" json:"manager,omitempty"`
}

// TableName tablo adı
func (Department) TableName() string { return "departments" }
