package dto

// ── İzin DTO ──

// CreateLeaveRequest izin talebi oluşturma isteği.
// EmployeeID yalnızca İK/yönetici başkası adına talep açarken kullanılır.
type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
	LeaveType  string `json:"leave_type"  binding:"required,oneof=annual sick maternity paternity unpaid excuse"`
	StartDate  string `json:"start_date"  binding:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date"    binding:"required,datetime=2006-01-02"`
	Reason     string `json:"reason"      binding:"omitempty,max=500"`
}

// RejectLeaveRequest izin reddetme isteği
type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}

// LeaveListRequest izin listesi sorgu parametreleri
type LeaveListRequest struct {
	PaginationRequest
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status"      binding:"omitempty,oneof=pending approved rejected cancelled"`
	LeaveType  string `form:"leave_type"  binding:"omitempty,oneof=annual sick maternity paternity unpaid excuse"`
}

// LeaveResponse izin yanıtı
type LeaveResponse struct {
	ID              string       `json:"id"`
	Employee        *EmployeeRef `json:"employee,omitempty"`
	EmployeeID      string       `json:"employee_id"`
	LeaveType       string       `json:"leave_type"`
	StartDate       string       `json:"start_date"`
	EndDate         string       `json:"end_date"`
	TotalDays       int          `json:"total_days"`
	Reason          string       `json:"reason,omitempty"`
	Status          string       `json:"status"`
	ApprovedBy      string       `json:"approved_by,omitempty"`
	ApprovedAt      string       `json:"approved_at,omitempty"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	CreatedAt       string       `json:"created_at"`
}

// LeaveBalanceResponse yıllık izin bakiyesi
type LeaveBalanceResponse struct {
	Year          int `json:"year"`
	AnnualDays    int `json:"annual_days"`
	UsedDays      int `json:"used_days"`
	RemainingDays int `json:"remaining_days"`
}
