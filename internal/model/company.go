package model

// Company şirket tablosu — companies
type Company struct {
	CompanyID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"company_id"`
	Name      string `gorm:"type:varchar(150);not null"                     json:"name"`
	TaxNumber string `gorm:"type:varchar(20)"                               json:"tax_number,omitempty"`
	Address   string `gorm:"type:text"                                      json:"address,omitempty"`
	Phone     string `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	Email     string `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	IsActive  bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

// TableName tablo adı
func (Company) TableName() string { return "companies" }
