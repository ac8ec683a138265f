package dto

// ── Çalışan DTO ──

// CreateEmployeeRequest çalışan oluşturma isteği
type CreateEmployeeRequest struct {
	FirstName       string  `json:"first_name"        binding:"required,min=2,max=50"`
	LastName        string  `json:"last_name"         binding:"required,min=2,max=50"`
	Email           string  `json:"email"             binding:"required,email"`
	Phone           string  `json:"phone"             binding:"omitempty,max=30"`
	NationalID      string  `json:"national_id"       binding:"required,numeric,len=11"`
	Position        string  `json:"position"          binding:"omitempty,max=100"`
	DepartmentID    *string `json:"department_id"     binding:"omitempty,uuid"`
	CompanyID       *string `json:"company_id"        binding:"omitempty,uuid"`
	HireDate        string  `json:"hire_date"         binding:"required,datetime=2006-01-02"`
	GrossSalary     float64 `json:"gross_salary"      binding:"gte=0"`
	Role            string  `json:"role"              binding:"omitempty,oneof=admin hr_manager employee"`
	AnnualLeaveDays *int    `json:"annual_leave_days" binding:"omitempty,min=0,max=60"`
}

// UpdateEmployeeRequest çalışan güncelleme isteği.
// Çalışan kendisi için yalnızca Phone alanını değiştirebilir.
type UpdateEmployeeRequest struct {
	FirstName       *string  `json:"first_name"        binding:"omitempty,min=2,max=50"`
	LastName        *string  `json:"last_name"         binding:"omitempty,min=2,max=50"`
	Email           *string  `json:"email"             binding:"omitempty,email"`
	Phone           *string  `json:"phone"             binding:"omitempty,max=30"`
	NationalID      *string  `json:"national_id"       binding:"omitempty,numeric,len=11"`
	Position        *string  `json:"position"          binding:"omitempty,max=100"`
	DepartmentID    *string  `json:"department_id"     binding:"omitempty,uuid"`
	CompanyID       *string  `json:"company_id"        binding:"omitempty,uuid"`
	HireDate        *string  `json:"hire_date"         binding:"omitempty,datetime=2006-01-02"`
	GrossSalary     *float64 `json:"gross_salary"      binding:"omitempty,gte=0"`
	Status          *string  `json:"status"            binding:"omitempty,oneof=active on_leave terminated"`
	Role            *string  `json:"role"              binding:"omitempty,oneof=admin hr_manager employee"`
	AnnualLeaveDays *int     `json:"annual_leave_days" binding:"omitempty,min=0,max=60"`
}

// EmployeeListRequest çalışan listesi sorgu parametreleri
type EmployeeListRequest struct {
	PaginationRequest
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	Status       string `form:"status"        binding:"omitempty,oneof=active on_leave terminated"`
	Role         string `form:"role"          binding:"omitempty,oneof=admin hr_manager employee"`
	Keyword      string `form:"keyword"       binding:"omitempty,max=50"`
}

// EmployeeResponse çalışan yanıtı
type EmployeeResponse struct {
	ID                 string              `json:"id"`
	FirstName          string              `json:"first_name"`
	LastName           string              `json:"last_name"`
	FullName           string              `json:"full_name"`
	Email              string              `json:"email"`
	Phone              string              `json:"phone,omitempty"`
	NationalID         string              `json:"national_id,omitempty"`
	Position           string              `json:"position,omitempty"`
	Department         *DepartmentResponse `json:"department,omitempty"`
	CompanyID          string              `json:"company_id,omitempty"`
	HireDate           string              `json:"hire_date"`
	GrossSalary        float64             `json:"gross_salary"`
	Status             string              `json:"status"`
	Role               string              `json:"role"`
	AnnualLeaveDays    int                 `json:"annual_leave_days"`
	MustChangePassword bool                `json:"must_change_password"`
	CreatedAt          string              `json:"created_at"`
}

// CreateEmployeeResponse oluşturulan çalışan ve geçici şifresi
type CreateEmployeeResponse struct {
	Employee     EmployeeResponse `json:"employee"`
	TempPassword string           `json:"temp_password"`
}

// ResetPasswordResponse şifre sıfırlama yanıtı
type ResetPasswordResponse struct {
	TempPassword string `json:"temp_password"`
}

// ImportEmployeeRequest içe aktarma sorgu parametreleri
type ImportEmployeeRequest struct {
	DryRun bool `form:"dry_run"`
}

// ImportEmployeeResponse toplu içe aktarma yanıtı
type ImportEmployeeResponse struct {
	DryRun   bool             `json:"dry_run"`
	Total    int              `json:"total"`
	Valid    int              `json:"valid"`
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError satır bazında hata
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ExportRequest dışa aktarma biçimi
type ExportRequest struct {
	Format string `form:"format" binding:"omitempty,oneof=xlsx csv"`
}
