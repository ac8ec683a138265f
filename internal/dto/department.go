package dto

// ── Departman DTO ──

// CreateDepartmentRequest departman oluşturma isteği
type CreateDepartmentRequest struct {
	Name        string  `json:"name"        binding:"required,min=2,max=50"`
	Description string  `json:"description" binding:"omitempty,max=200"`
	CompanyID   *string `json:"company_id"  binding:"omitempty,uuid"`
	ManagerID   *string `json:"manager_id"  binding:"omitempty,uuid"`
}

// UpdateDepartmentRequest departman güncelleme isteği
type UpdateDepartmentRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=2,max=50"`
	Description *string `json:"description" binding:"omitempty,max=200"`
	ManagerID   *string `json:"manager_id"  binding:"omitempty,uuid"`
	IsActive    *bool   `json:"is_active"`
}

// DepartmentListRequest departman listesi sorgu parametreleri
type DepartmentListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// DepartmentDetailResponse departman detay yanıtı
type DepartmentDetailResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	CompanyID   string       `json:"company_id,omitempty"`
	Manager     *EmployeeRef `json:"manager,omitempty"`
	IsActive    bool         `json:"is_active"`
	MemberCount int64        `json:"member_count"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
}

// DepartmentMemberResponse departman üyesi yanıtı
type DepartmentMemberResponse struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Position   string `json:"position,omitempty"`
	Role       string `json:"role"`
	Status     string `json:"status"`
}
