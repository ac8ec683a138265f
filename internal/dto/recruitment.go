package dto

// ── İşe alım DTO ──

// CreatePostingRequest ilan oluşturma isteği
type CreatePostingRequest struct {
	DepartmentID   *string  `json:"department_id"   binding:"omitempty,uuid"`
	Title          string   `json:"title"           binding:"required,min=3,max=150"`
	Description    string   `json:"description"     binding:"required,min=10"`
	Requirements   string   `json:"requirements"    binding:"omitempty,max=5000"`
	Location       string   `json:"location"        binding:"omitempty,max=150"`
	EmploymentType string   `json:"employment_type" binding:"required,oneof=full_time part_time contract internship"`
	SalaryMin      *float64 `json:"salary_min"      binding:"omitempty,gte=0"`
	SalaryMax      *float64 `json:"salary_max"      binding:"omitempty,gte=0"`
	Status         string   `json:"status"          binding:"omitempty,oneof=draft open closed"`
	ClosesAt       *string  `json:"closes_at"       binding:"omitempty,datetime=2006-01-02"`
}

// UpdatePostingRequest ilan güncelleme isteği
type UpdatePostingRequest struct {
	DepartmentID   *string  `json:"department_id"   binding:"omitempty,uuid"`
	Title          *string  `json:"title"           binding:"omitempty,min=3,max=150"`
	Description    *string  `json:"description"     binding:"omitempty,min=10"`
	Requirements   *string  `json:"requirements"    binding:"omitempty,max=5000"`
	Location       *string  `json:"location"        binding:"omitempty,max=150"`
	EmploymentType *string  `json:"employment_type" binding:"omitempty,oneof=full_time part_time contract internship"`
	SalaryMin      *float64 `json:"salary_min"      binding:"omitempty,gte=0"`
	SalaryMax      *float64 `json:"salary_max"      binding:"omitempty,gte=0"`
	Status         *string  `json:"status"          binding:"omitempty,oneof=draft open closed"`
	ClosesAt       *string  `json:"closes_at"       binding:"omitempty,datetime=2006-01-02"`
}

// PostingListRequest ilan listesi sorgu parametreleri
type PostingListRequest struct {
	PaginationRequest
	Status       string `form:"status"        binding:"omitempty,oneof=draft open closed"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
}

// PostingResponse ilan yanıtı
type PostingResponse struct {
	ID             string              `json:"id"`
	Department     *DepartmentResponse `json:"department,omitempty"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Requirements   string              `json:"requirements,omitempty"`
	Location       string              `json:"location,omitempty"`
	EmploymentType string              `json:"employment_type"`
	SalaryMin      *float64            `json:"salary_min,omitempty"`
	SalaryMax      *float64            `json:"salary_max,omitempty"`
	Status         string              `json:"status"`
	ClosesAt       string              `json:"closes_at,omitempty"`
	CreatedAt      string              `json:"created_at"`
}

// ApplyRequest herkese açık başvuru isteği
type ApplyRequest struct {
	CandidateName string `json:"candidate_name" binding:"required,min=2,max=100"`
	Email         string `json:"email"          binding:"required,email"`
	Phone         string `json:"phone"          binding:"omitempty,max=30"`
	ResumeURL     string `json:"resume_url"     binding:"omitempty,url,max=500"`
	CoverLetter   string `json:"cover_letter"   binding:"omitempty,max=5000"`
}

// UpdateApplicationStatusRequest başvuru durum değişikliği
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=received reviewing interview offered hired rejected"`
	Notes  string `json:"notes"  binding:"omitempty,max=2000"`
}

// ApplicationListRequest başvuru listesi sorgu parametreleri
type ApplicationListRequest struct {
	PaginationRequest
	JobPostingID string `form:"job_posting_id" binding:"omitempty,uuid"`
	Status       string `form:"status"         binding:"omitempty,oneof=received reviewing interview offered hired rejected"`
}

// ApplicationResponse başvuru yanıtı
type ApplicationResponse struct {
	ID            string `json:"id"`
	JobPostingID  string `json:"job_posting_id"`
	PostingTitle  string `json:"posting_title,omitempty"`
	CandidateName string `json:"candidate_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	ResumeURL     string `json:"resume_url,omitempty"`
	CoverLetter   string `json:"cover_letter,omitempty"`
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"created_at"`
}
