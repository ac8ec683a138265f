package dto

// ── Performans DTO ──

// CreateReviewRequest değerlendirme oluşturma isteği
type CreateReviewRequest struct {
	EmployeeID   string  `json:"employee_id"  binding:"required,uuid"`
	Period       string  `json:"period"       binding:"required,max=20"`
	Score        float64 `json:"score"        binding:"required,gte=1,lte=5"`
	Goals        string  `json:"goals"        binding:"omitempty,max=2000"`
	Strengths    string  `json:"strengths"    binding:"omitempty,max=2000"`
	Improvements string  `json:"improvements" binding:"omitempty,max=2000"`
	Comments     string  `json:"comments"     binding:"omitempty,max=2000"`
}

// UpdateReviewRequest değerlendirme güncelleme isteği
type UpdateReviewRequest struct {
	Period       *string  `json:"period"       binding:"omitempty,max=20"`
	Score        *float64 `json:"score"        binding:"omitempty,gte=1,lte=5"`
	Goals        *string  `json:"goals"        binding:"omitempty,max=2000"`
	Strengths    *string  `json:"strengths"    binding:"omitempty,max=2000"`
	Improvements *string  `json:"improvements" binding:"omitempty,max=2000"`
	Comments     *string  `json:"comments"     binding:"omitempty,max=2000"`
}

// ReviewListRequest değerlendirme listesi sorgu parametreleri
type ReviewListRequest struct {
	PaginationRequest
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Period     string `form:"period"      binding:"omitempty,max=20"`
	Status     string `form:"status"      binding:"omitempty,oneof=draft submitted finalized"`
}

// ReviewResponse değerlendirme yanıtı
type ReviewResponse struct {
	ID           string       `json:"id"`
	Employee     *EmployeeRef `json:"employee,omitempty"`
	Reviewer     *EmployeeRef `json:"reviewer,omitempty"`
	EmployeeID   string       `json:"employee_id"`
	ReviewerID   string       `json:"reviewer_id"`
	Period       string       `json:"period"`
	Score        float64      `json:"score"`
	Goals        string       `json:"goals,omitempty"`
	Strengths    string       `json:"strengths,omitempty"`
	Improvements string       `json:"improvements,omitempty"`
	Comments     string       `json:"comments,omitempty"`
	Status       string       `json:"status"`
	FinalizedAt  string       `json:"finalized_at,omitempty"`
	CreatedAt    string       `json:"created_at"`
}

// PerformanceSummaryResponse puan ortalamaları
type PerformanceSummaryResponse struct {
	OverallAverage float64                   `json:"overall_average"`
	ReviewCount    int64                     `json:"review_count"`
	Departments    []DepartmentScoreResponse `json:"departments"`
}

// DepartmentScoreResponse departman ortalaması
type DepartmentScoreResponse struct {
	DepartmentID   string  `json:"department_id,omitempty"`
	DepartmentName string  `json:"department_name"`
	Average        float64 `json:"average"`
	ReviewCount    int64   `json:"review_count"`
}
