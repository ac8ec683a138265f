package handler

import "hr-intelligence/backend/internal/service"

// Handler tüm HTTP işleyicilerinin toplu girişi
type Handler struct {
	Auth         *AuthHandler
	Company      *CompanyHandler
	Department   *DepartmentHandler
	Employee     *EmployeeHandler
	Leave        *LeaveHandler
	Payroll      *PayrollHandler
	Performance  *PerformanceHandler
	Training     *TrainingHandler
	Notification *NotificationHandler
	Message      *MessageHandler
	Document     *DocumentHandler
	Recruitment  *RecruitmentHandler
	Dashboard    *DashboardHandler
	Export       *ExportHandler
}

// NewHandler Handler toplu girişini oluşturur
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Company:      NewCompanyHandler(svc.Company),
		Department:   NewDepartmentHandler(svc.Department),
		Employee:     NewEmployeeHandler(svc.Employee),
		Leave:        NewLeaveHandler(svc.Leave),
		Payroll:      NewPayrollHandler(svc.Payroll),
		Performance:  NewPerformanceHandler(svc.Performance),
		Training:     NewTrainingHandler(svc.Training),
		Notification: NewNotificationHandler(svc.Notification),
		Message:      NewMessageHandler(svc.Message),
		Document:     NewDocumentHandler(svc.Document),
		Recruitment:  NewRecruitmentHandler(svc.Recruitment),
		Dashboard:    NewDashboardHandler(svc.Dashboard),
		Export:       NewExportHandler(svc.Export),
	}
}
