package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/internal/repository"
)

const (
	dashboardCacheTTL     = 60 * time.Second
	dashboardAdminKey     = "dashboard:admin"
	dashboardHRKey        = "dashboard:hr"
	upcomingTrainingLimit = 5
	pendingPreviewLimit   = 10
)

// DashboardService rol bazlı panel iş arayüzü
type DashboardService interface {
	Admin(ctx context.Context) (*dto.AdminDashboardResponse, error)
	HR(ctx context.Context) (*dto.HRDashboardResponse, error)
	Employee(ctx context.Context, employeeID string) (*dto.EmployeeDashboardResponse, error)
	// Invalidate önbellekteki panelleri temizler
	Invalidate(ctx context.Context)
}

type dashboardService struct {
	repo   *repository.Repository
	leave  LeaveService
	cache  Cache
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService DashboardService örneği oluşturur. cache nil olabilir.
func NewDashboardService(repo *repository.Repository, leave LeaveService, cache Cache, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, leave: leave, cache: cache, logger: logger, now: time.Now}
}

// ────────────────────── Admin ──────────────────────

func (s *dashboardService) Admin(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	var cached dto.AdminDashboardResponse
	if s.fromCache(ctx, dashboardAdminKey, &cached) {
		return &cached, nil
	}

	now := s.now()
	resp := &dto.AdminDashboardResponse{}
	var (
		byStatus   map[string]int64
		headcounts []repository.DepartmentHeadcount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resp.TotalCompanies, err = s.repo.Company.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.TotalDepartments, err = s.repo.Department.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		byStatus, err = s.repo.Employee.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		headcounts, err = s.repo.Employee.HeadcountByDepartment(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.OpenPostings, err = s.repo.JobPosting.CountByStatus(gctx, model.PostingStatusOpen)
		return err
	})
	g.Go(func() (err error) {
		resp.PendingLeaves, err = s.repo.Leave.CountPending(gctx, "")
		return err
	})
	g.Go(func() error {
		totals, err := s.repo.Payroll.Totals(gctx, now.Year(), int(now.Month()))
		if err != nil {
			return err
		}
		resp.MonthlyPayrollTotal = round2(totals.Net)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("yönetici paneli hesaplanamadı", zap.Error(err))
		return nil, err
	}

	for _, n := range byStatus {
		resp.TotalEmployees += n
	}
	resp.ActiveEmployees = byStatus[model.EmployeeStatusActive]

	// yüzdeler departmana atanmış çalışanların toplamına göre
	var assigned int64
	for _, h := range headcounts {
		assigned += h.Count
	}
	resp.DepartmentHeadcounts = make([]dto.DepartmentHeadcount, 0, len(headcounts))
	for _, h := range headcounts {
		resp.DepartmentHeadcounts = append(resp.DepartmentHeadcounts, dto.DepartmentHeadcount{
			DepartmentID:   h.DepartmentID,
			DepartmentName: h.DepartmentName,
			Count:          h.Count,
			Percentage:     percentage(h.Count, assigned),
		})
	}
	resp.GeneratedAt = formatTime(now)

	s.toCache(ctx, dashboardAdminKey, resp)
	return resp, nil
}

// ────────────────────── HR ──────────────────────

func (s *dashboardService) HR(ctx context.Context) (*dto.HRDashboardResponse, error) {
	var cached dto.HRDashboardResponse
	if s.fromCache(ctx, dashboardHRKey, &cached) {
		return &cached, nil
	}

	now := s.now()
	today := truncateDay(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	resp := &dto.HRDashboardResponse{}
	var (
		scores    []repository.DepartmentScore
		trainings []model.Training
		pending   []model.Leave
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resp.PendingLeaves, err = s.repo.Leave.CountPending(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		resp.OnLeaveToday, err = s.repo.Leave.CountOnLeave(gctx, today)
		return err
	})
	g.Go(func() (err error) {
		scores, err = s.repo.Performance.ScoresByDepartment(gctx)
		return err
	})
	g.Go(func() (err error) {
		trainings, err = s.repo.Training.ListUpcoming(gctx, today, upcomingTrainingLimit)
		return err
	})
	g.Go(func() (err error) {
		resp.ApplicationsByStatus, err = s.repo.JobApplication.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		resp.NewHiresThisMonth, err = s.repo.Employee.CountHiredSince(gctx, monthStart)
		return err
	})
	g.Go(func() (err error) {
		pending, err = s.repo.Leave.ListPending(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("İK paneli hesaplanamadı", zap.Error(err))
		return nil, err
	}

	var total float64
	var count int64
	for _, sc := range scores {
		total += sc.Total
		count += sc.Count
	}
	resp.AveragePerformance = safeAverage(total, count)

	resp.UpcomingTrainings = make([]dto.TrainingResponse, 0, len(trainings))
	for i := range trainings {
		resp.UpcomingTrainings = append(resp.UpcomingTrainings, toTrainingResponse(&trainings[i]))
	}

	if len(pending) > pendingPreviewLimit {
		pending = pending[:pendingPreviewLimit]
	}
	resp.PendingLeaveRequests = toLeaveResponses(pending)
	if resp.ApplicationsByStatus == nil {
		resp.ApplicationsByStatus = map[string]int64{}
	}

	s.toCache(ctx, dashboardHRKey, resp)
	return resp, nil
}

// ────────────────────── Employee ──────────────────────

// Employee kişisel veriler içerdiği için önbelleğe alınmaz
func (s *dashboardService) Employee(ctx context.Context, employeeID string) (*dto.EmployeeDashboardResponse, error) {
	resp := &dto.EmployeeDashboardResponse{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		balance, err := s.leave.Balance(gctx, employeeID, s.now().Year())
		if err != nil {
			return err
		}
		resp.LeaveBalance = *balance
		return nil
	})
	g.Go(func() (err error) {
		resp.PendingLeaves, err = s.repo.Leave.CountPending(gctx, employeeID)
		return err
	})
	g.Go(func() error {
		payroll, err := s.repo.Payroll.LatestForEmployee(gctx, employeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		p := toPayrollResponse(payroll)
		resp.LatestPayroll = &p
		return nil
	})
	g.Go(func() (err error) {
		resp.UnreadNotifications, err = s.repo.Notification.CountUnread(gctx, employeeID)
		return err
	})
	g.Go(func() (err error) {
		resp.UnreadMessages, err = s.repo.Message.CountUnread(gctx, employeeID)
		return err
	})
	g.Go(func() (err error) {
		resp.ActiveTrainings, err = s.repo.Enrollment.CountActiveByEmployee(gctx, employeeID)
		return err
	})
	g.Go(func() error {
		review, err := s.repo.Performance.LatestForEmployee(gctx, employeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		score := review.Score
		resp.LatestReviewScore = &score
		return nil
	})
	if err := g.Wait(); err != nil {
		if !errors.Is(err, ErrEmployeeNotFound) {
			s.logger.Error("çalışan paneli hesaplanamadı", zap.String("employee_id", employeeID), zap.Error(err))
		}
		return nil, err
	}
	return resp, nil
}

func (s *dashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, dashboardAdminKey, dashboardHRKey); err != nil {
		s.logger.Warn("panel önbelleği temizlenemedi", zap.Error(err))
	}
}

// ── Önbellek yardımcıları ──

func (s *dashboardService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	if err := s.cache.GetJSON(ctx, key, dest); err != nil {
		return false
	}
	return true
}

func (s *dashboardService) toCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, dashboardCacheTTL); err != nil {
		s.logger.Warn("panel önbelleğe yazılamadı", zap.String("key", key), zap.Error(err))
	}
}
