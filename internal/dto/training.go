package dto

// ── Eğitim DTO ──

// CreateTrainingRequest eğitim oluşturma isteği
type CreateTrainingRequest struct {
	Title       string `json:"title"       binding:"required,min=3,max=150"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Instructor  string `json:"instructor"  binding:"omitempty,max=100"`
	Location    string `json:"location"    binding:"omitempty,max=150"`
	StartDate   string `json:"start_date"  binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date"    binding:"required,datetime=2006-01-02"`
	Capacity    int    `json:"capacity"    binding:"min=0,max=10000"`
}

// UpdateTrainingRequest eğitim güncelleme isteği
type UpdateTrainingRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=3,max=150"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Instructor  *string `json:"instructor"  binding:"omitempty,max=100"`
	Location    *string `json:"location"    binding:"omitempty,max=150"`
	StartDate   *string `json:"start_date"  binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date"    binding:"omitempty,datetime=2006-01-02"`
	Capacity    *int    `json:"capacity"    binding:"omitempty,min=0,max=10000"`
	Status      *string `json:"status"      binding:"omitempty,oneof=planned ongoing completed cancelled"`
}

// TrainingListRequest eğitim listesi sorgu parametreleri
type TrainingListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=planned ongoing completed cancelled"`
}

// EnrollRequest katılım isteği. EmployeeID boşsa oturum sahibi kaydolur.
type EnrollRequest struct {
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
}

// CompleteEnrollmentRequest katılım tamamlama isteği
type CompleteEnrollmentRequest struct {
	Score *float64 `json:"score" binding:"omitempty,gte=0,lte=100"`
}

// TrainingResponse eğitim yanıtı
type TrainingResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Instructor  string `json:"instructor,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// EnrollmentResponse katılım yanıtı
type EnrollmentResponse struct {
	ID          string            `json:"id"`
	TrainingID  string            `json:"training_id"`
	Training    *TrainingResponse `json:"training,omitempty"`
	Employee    *EmployeeRef      `json:"employee,omitempty"`
	EmployeeID  string            `json:"employee_id"`
	Status      string            `json:"status"`
	Score       *float64          `json:"score,omitempty"`
	CompletedAt string            `json:"completed_at,omitempty"`
	CreatedAt   string            `json:"created_at"`
}
