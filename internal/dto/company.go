package dto

// ── Şirket DTO ──

// CreateCompanyRequest şirket oluşturma isteği
type CreateCompanyRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=150"`
	TaxNumber string `json:"tax_number" binding:"omitempty,numeric,min=10,max=11"`
	Address   string `json:"address"    binding:"omitempty,max=500"`
	Phone     string `json:"phone"      binding:"omitempty,max=30"`
	Email     string `json:"email"      binding:"omitempty,email"`
}

// UpdateCompanyRequest şirket güncelleme isteği
type UpdateCompanyRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=150"`
	TaxNumber *string `json:"tax_number" binding:"omitempty,numeric,min=10,max=11"`
	Address   *string `json:"address"    binding:"omitempty,max=500"`
	Phone     *string `json:"phone"      binding:"omitempty,max=30"`
	Email     *string `json:"email"      binding:"omitempty,email"`
	IsActive  *bool   `json:"is_active"`
}

// CompanyResponse şirket yanıtı
type CompanyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TaxNumber string `json:"tax_number,omitempty"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
