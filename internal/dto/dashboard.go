package dto

// ── Panel DTO ──

// AdminDashboardResponse yönetici paneli
type AdminDashboardResponse struct {
	TotalCompanies       int64                 `json:"total_companies"`
	TotalDepartments     int64                 `json:"total_departments"`
	TotalEmployees       int64                 `json:"total_employees"`
	ActiveEmployees      int64                 `json:"active_employees"`
	OpenPostings         int64                 `json:"open_postings"`
	PendingLeaves        int64                 `json:"pending_leaves"`
	MonthlyPayrollTotal  float64               `json:"monthly_payroll_total"`
	DepartmentHeadcounts []DepartmentHeadcount `json:"department_headcounts"`
	GeneratedAt          string                `json:"generated_at"`
}

// DepartmentHeadcount departman çalışan sayısı ve toplam içindeki yüzdesi
type DepartmentHeadcount struct {
	DepartmentID   string  `json:"department_id"`
	DepartmentName string  `json:"department_name"`
	Count          int64   `json:"count"`
	Percentage     float64 `json:"percentage"`
}

// HRDashboardResponse İK paneli
type HRDashboardResponse struct {
	PendingLeaves        int64              `json:"pending_leaves"`
	OnLeaveToday         int64              `json:"on_leave_today"`
	AveragePerformance   float64            `json:"average_performance"`
	UpcomingTrainings    []TrainingResponse `json:"upcoming_trainings"`
	ApplicationsByStatus map[string]int64   `json:"applications_by_status"`
	NewHiresThisMonth    int64              `json:"new_hires_this_month"`
	PendingLeaveRequests []LeaveResponse    `json:"pending_leave_requests"`
}

// EmployeeDashboardResponse çalışan paneli
type EmployeeDashboardResponse struct {
	LeaveBalance        LeaveBalanceResponse `json:"leave_balance"`
	PendingLeaves       int64                `json:"pending_leaves"`
	LatestPayroll       *PayrollResponse     `json:"latest_payroll,omitempty"`
	UnreadNotifications int64                `json:"unread_notifications"`
	UnreadMessages      int64                `json:"unread_messages"`
	ActiveTrainings     int64                `json:"active_trainings"`
	LatestReviewScore   *float64             `json:"latest_review_score,omitempty"`
}
