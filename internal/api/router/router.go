package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hr-intelligence/backend/config"
	"hr-intelligence/backend/internal/api/handler"
	"hr-intelligence/backend/internal/api/middleware"
	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/internal/realtime"
	"hr-intelligence/backend/pkg/jwt"
	"hr-intelligence/backend/pkg/response"
)

const (
	loginRateLimit   = 10
	careersRateLimit = 20
	rateWindow       = time.Minute
	jsonBodyLimit    = 1 << 20
)

// ReadinessCheck /ready için bağımlılık kontrolü (veritabanı ping)
type ReadinessCheck func(ctx context.Context) error

// Deps router bağımlılıkları. Blacklist ve RateStore Redis yoksa nil olabilir.
type Deps struct {
	Config    *config.Config
	Handler   *handler.Handler
	Realtime  *realtime.Handler
	JWT       *jwt.Manager
	Blacklist middleware.BlacklistChecker
	RateStore middleware.RateChecker
	Ready     ReadinessCheck
	// OnWrite başarılı her yazma isteğinden sonra çağrılır (panel önbelleği)
	OnWrite func(ctx context.Context)
	Logger  *zap.Logger
}

// Setup Gin motorunu kurar ve döner
func Setup(d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	cfg, h := d.Config, d.Handler
	r := gin.New()

	// ── Global ara katmanlar ──
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(jsonBodyLimit, cfg.Server.MaxUploadMB<<20))

	// ── Sağlık kontrolleri ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if d.Ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := d.Ready(ctx); err != nil {
				d.Logger.Warn("hazırlık kontrolü başarısız", zap.Error(err))
				response.Error(c, http.StatusServiceUnavailable, 50300, "Veritabanına ulaşılamıyor")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if d.Realtime != nil {
		r.GET("/ws", d.Realtime.Serve)
	}

	hrRoles := middleware.RoleAuth(model.RoleAdmin, model.RoleHRManager)
	adminOnly := middleware.RoleAuth(model.RoleAdmin)

	v1 := r.Group("/api/v1")
	{
		// Kimlik doğrulama (oturumsuz)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(d.RateStore, loginRateLimit, rateWindow), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Kariyer sayfası (oturumsuz)
		careers := v1.Group("/careers")
		careers.Use(middleware.RateLimit(d.RateStore, careersRateLimit, rateWindow), middleware.AfterWrite(d.OnWrite))
		{
			careers.GET("", h.Recruitment.ListOpenPostings)
			careers.POST("/:posting_id/apply", h.Recruitment.Apply)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(d.JWT, d.Blacklist), middleware.AfterWrite(d.OnWrite))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			companies := authorized.Group("/companies")
			{
				companies.GET("", h.Company.ListCompanies)
				companies.GET("/:id", h.Company.GetCompany)
				companies.POST("", adminOnly, h.Company.CreateCompany)
				companies.PUT("/:id", adminOnly, h.Company.UpdateCompany)
				companies.DELETE("/:id", adminOnly, h.Company.DeleteCompany)
			}

			departments := authorized.Group("/departments")
			{
				departments.GET("", h.Department.ListDepartments)
				departments.GET("/:id", h.Department.GetDepartment)
				departments.GET("/:id/members", hrRoles, h.Department.GetMembers)
				departments.POST("", adminOnly, h.Department.CreateDepartment)
				departments.PUT("/:id", adminOnly, h.Department.UpdateDepartment)
				departments.DELETE("/:id", adminOnly, h.Department.DeleteDepartment)
			}

			employees := authorized.Group("/employees")
			{
				employees.GET("", hrRoles, h.Employee.ListEmployees)
				employees.GET("/export", hrRoles, h.Export.ExportEmployees)
				employees.POST("/import", hrRoles, h.Employee.ImportEmployees)
				employees.GET("/:id", h.Employee.GetEmployee) // İK veya kendisi (servis katmanında)
				employees.POST("", hrRoles, h.Employee.CreateEmployee)
				employees.PUT("/:id", h.Employee.UpdateEmployee)
				employees.DELETE("/:id", adminOnly, h.Employee.DeleteEmployee)
				employees.POST("/:id/reset-password", hrRoles, h.Employee.ResetPassword)
			}

			leaves := authorized.Group("/leaves")
			{
				leaves.GET("", h.Leave.ListLeaves)
				leaves.GET("/pending", hrRoles, h.Leave.ListPending)
				leaves.GET("/balance", h.Leave.Balance)
				leaves.GET("/:id", h.Leave.GetLeave)
				leaves.POST("", h.Leave.CreateLeave)
				leaves.PUT("/:id/approve", hrRoles, h.Leave.ApproveLeave)
				leaves.PUT("/:id/reject", hrRoles, h.Leave.RejectLeave)
				leaves.PUT("/:id/cancel", h.Leave.CancelLeave)
			}

			payrolls := authorized.Group("/payrolls")
			{
				payrolls.GET("/me", h.Payroll.ListMine)
				payrolls.GET("", hrRoles, h.Payroll.ListPayrolls)
				payrolls.GET("/summary", hrRoles, h.Payroll.Summary)
				payrolls.GET("/export", hrRoles, h.Export.ExportPayroll)
				payrolls.GET("/:id", h.Payroll.GetPayroll)
				payrolls.POST("/generate", hrRoles, h.Payroll.GeneratePayroll)
				payrolls.PUT("/:id", hrRoles, h.Payroll.UpdatePayroll)
				payrolls.PUT("/:id/approve", hrRoles, h.Payroll.ApprovePayroll)
				payrolls.PUT("/:id/pay", hrRoles, h.Payroll.PayPayroll)
			}

			performance := authorized.Group("/performance")
			{
				performance.GET("", h.Performance.ListReviews)
				performance.GET("/summary", hrRoles, h.Performance.Summary)
				performance.GET("/:id", h.Performance.GetReview)
				performance.POST("", hrRoles, h.Performance.CreateReview)
				performance.PUT("/:id", hrRoles, h.Performance.UpdateReview)
				performance.PUT("/:id/submit", hrRoles, h.Performance.SubmitReview)
				performance.PUT("/:id/finalize", hrRoles, h.Performance.FinalizeReview)
				performance.DELETE("/:id", hrRoles, h.Performance.DeleteReview)
			}

			trainings := authorized.Group("/trainings")
			{
				trainings.GET("", h.Training.ListTrainings)
				trainings.GET("/me", h.Training.ListMine)
				trainings.GET("/:id", h.Training.GetTraining)
				trainings.POST("", hrRoles, h.Training.CreateTraining)
				trainings.PUT("/:id", hrRoles, h.Training.UpdateTraining)
				trainings.DELETE("/:id", hrRoles, h.Training.DeleteTraining)
				trainings.POST("/:id/enroll", h.Training.Enroll)
				trainings.GET("/:id/enrollments", hrRoles, h.Training.ListEnrollments)
				trainings.PUT("/:id/enrollments/:enrollment_id/complete", hrRoles, h.Training.CompleteEnrollment)
				trainings.DELETE("/:id/enrollments/:enrollment_id", h.Training.CancelEnrollment)
			}

			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.ListNotifications)
				notifications.GET("/unread-count", h.Notification.UnreadCount)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
				notifications.DELETE("/:id", h.Notification.DeleteNotification)
			}

			messages := authorized.Group("/messages")
			{
				messages.POST("", h.Message.SendMessage)
				messages.GET("/inbox", h.Message.Inbox)
				messages.GET("/sent", h.Message.Sent)
				messages.GET("/unread-count", h.Message.UnreadCount)
				messages.GET("/:id", h.Message.GetMessage)
				messages.DELETE("/:id", h.Message.DeleteMessage)
			}

			documents := authorized.Group("/documents")
			{
				documents.GET("", h.Document.ListDocuments)
				documents.POST("", hrRoles, h.Document.UploadDocument)
				documents.GET("/:id", h.Document.GetDocument)
				documents.GET("/:id/download", h.Document.DownloadDocument)
				documents.DELETE("/:id", hrRoles, h.Document.DeleteDocument)
			}

			postings := authorized.Group("/job-postings", hrRoles)
			{
				postings.GET("", h.Recruitment.ListPostings)
				postings.GET("/:id", h.Recruitment.GetPosting)
				postings.POST("", h.Recruitment.CreatePosting)
				postings.PUT("/:id", h.Recruitment.UpdatePosting)
				postings.DELETE("/:id", h.Recruitment.DeletePosting)
			}

			applications := authorized.Group("/applications", hrRoles)
			{
				applications.GET("", h.Recruitment.ListApplications)
				applications.GET("/:id", h.Recruitment.GetApplication)
				applications.PUT("/:id/status", h.Recruitment.UpdateApplicationStatus)
			}

			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/admin", adminOnly, h.Dashboard.Admin)
				dashboard.GET("/hr", hrRoles, h.Dashboard.HR)
				dashboard.GET("/employee", h.Dashboard.Employee)
			}
		}
	}

	return r
}
