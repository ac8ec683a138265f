package service

import (
	"go.uber.org/zap"

	"hr-intelligence/backend/config"
	"hr-intelligence/backend/internal/realtime"
	"hr-intelligence/backend/internal/repository"
	"hr-intelligence/backend/pkg/email"
	"hr-intelligence/backend/pkg/jwt"
)

// Service tüm Service'lerin toplu giriş noktası
type Service struct {
	Auth         AuthService
	Company      CompanyService
	Department   DepartmentService
	Employee     EmployeeService
	Leave        LeaveService
	Payroll      PayrollService
	Performance  PerformanceService
	Training     TrainingService
	Notification NotificationService
	Message      MessageService
	Document     DocumentService
	Recruitment  RecruitmentService
	Dashboard    DashboardService
	Export       ExportService
}

// NewService Service toplamını oluşturur.
// blacklist, cache ve publisher nil olabilir (Redis / WebSocket yoksa).
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	cache Cache,
	publisher realtime.Publisher,
	mailer email.Sender,
	logger *zap.Logger,
) (*Service, error) {
	notification := NewNotificationService(repo, publisher, mailer, logger)

	document, err := NewDocumentService(&cfg.Server, repo, logger)
	if err != nil {
		return nil, err
	}

	leave := NewLeaveService(repo, notification, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		Company:      NewCompanyService(repo, logger),
		Department:   NewDepartmentService(repo, logger),
		Employee:     NewEmployeeService(cfg, repo, logger),
		Leave:        leave,
		Payroll:      NewPayrollService(cfg, repo, notification, logger),
		Performance:  NewPerformanceService(repo, notification, logger),
		Training:     NewTrainingService(repo, notification, logger),
		Notification: notification,
		Message:      NewMessageService(repo, publisher, logger),
		Document:     document,
		Recruitment:  NewRecruitmentService(repo, notification, mailer, logger),
		Dashboard:    NewDashboardService(repo, leave, cache, logger),
		Export:       NewExportService(repo, logger),
	}, nil
}
