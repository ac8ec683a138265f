package dto

// ── Ortak ──

// PaginationRequest ortak sayfalama parametreleri
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage sayfa numarası (varsayılan 1)
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize sayfa boyutu (varsayılan 20)
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset kayıt ofsetini hesaplar
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// CountResponse tekil sayaç yanıtı
type CountResponse struct {
	Count int64 `json:"count"`
}

// ── Kimlik doğrulama yanıtları ──

// TokenResponse token çifti yanıtı
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // saniye
	User         UserResponse `json:"user"`
}

// UserResponse oturum sahibinin özet bilgisi
type UserResponse struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Email              string              `json:"email"`
	Role               string              `json:"role"`
	Department         *DepartmentResponse `json:"department,omitempty"`
	MustChangePassword bool                `json:"must_change_password"`
}

// DepartmentResponse departman özet bilgisi
type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EmployeeRef çalışan özet bilgisi
type EmployeeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
