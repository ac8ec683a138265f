package dto

// ── Bordro DTO ──

// GeneratePayrollRequest dönem bordrosu üretme isteği
type GeneratePayrollRequest struct {
	Year  int `json:"year"  binding:"required,min=2000,max=2100"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// GeneratePayrollResponse üretim sonucu
type GeneratePayrollResponse struct {
	Year    int `json:"year"`
	Month   int `json:"month"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// UpdatePayrollRequest taslak bordro düzenleme isteği
type UpdatePayrollRequest struct {
	Bonus      *float64 `json:"bonus"      binding:"omitempty,gte=0"`
	Deductions *float64 `json:"deductions" binding:"omitempty,gte=0"`
}

// PayrollListRequest bordro listesi sorgu parametreleri
type PayrollListRequest struct {
	PaginationRequest
	Year       int    `form:"year"        binding:"omitempty,min=2000,max=2100"`
	Month      int    `form:"month"       binding:"omitempty,min=1,max=12"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status"      binding:"omitempty,oneof=draft approved paid"`
}

// PayrollPeriodRequest dönem parametreleri (özet ve dışa aktarma)
type PayrollPeriodRequest struct {
	Year  int `form:"year"  binding:"required,min=2000,max=2100"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// PayrollResponse bordro yanıtı
type PayrollResponse struct {
	ID           string       `json:"id"`
	Employee     *EmployeeRef `json:"employee,omitempty"`
	EmployeeID   string       `json:"employee_id"`
	PeriodYear   int          `json:"period_year"`
	PeriodMonth  int          `json:"period_month"`
	GrossSalary  float64      `json:"gross_salary"`
	Bonus        float64      `json:"bonus"`
	Deductions   float64      `json:"deductions"`
	SGKEmployee  float64      `json:"sgk_employee"`
	Unemployment float64      `json:"unemployment"`
	IncomeTax    float64      `json:"income_tax"`
	StampTax     float64      `json:"stamp_tax"`
	NetSalary    float64      `json:"net_salary"`
	Currency     string       `json:"currency"`
	Status       string       `json:"status"`
	ApprovedAt   string       `json:"approved_at,omitempty"`
	PaidAt       string       `json:"paid_at,omitempty"`
}

// PayrollSummaryResponse dönem toplamları
type PayrollSummaryResponse struct {
	Year              int     `json:"year"`
	Month             int     `json:"month"`
	Count             int64   `json:"count"`
	TotalGross        float64 `json:"total_gross"`
	TotalBonus        float64 `json:"total_bonus"`
	TotalDeductions   float64 `json:"total_deductions"`
	TotalSGK          float64 `json:"total_sgk"`
	TotalUnemployment float64 `json:"total_unemployment"`
	TotalIncomeTax    float64 `json:"total_income_tax"`
	TotalStampTax     float64 `json:"total_stamp_tax"`
	TotalNet          float64 `json:"total_net"`
	AverageNet        float64 `json:"average_net"`
	Currency          string  `json:"currency"`
}
