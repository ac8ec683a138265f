package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hr-intelligence/backend/config"
	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/internal/repository"
	"hr-intelligence/backend/pkg/database"
	pkgerrors "hr-intelligence/backend/pkg/errors"
)

// ── Bordro modülü iş hataları ──

var (
	ErrPayrollNotFound      = errors.New("bordro bulunamadı")
	ErrPayrollNotDraft      = errors.New("yalnızca taslak bordrolar düzenlenebilir veya onaylanabilir")
	ErrPayrollNotApproved   = errors.New("yalnızca onaylanmış bordrolar ödenebilir")
	ErrPayrollPeriodInvalid = errors.New("bordro dönemi geçersiz")
	ErrPayrollConcurrent    = errors.New("bordro başka bir kullanıcı tarafından değiştirildi, yeniden deneyin")
)

// PayrollBreakdown brüt maaştan nete hesaplama sonucu
type PayrollBreakdown struct {
	Gross        float64
	Bonus        float64
	Deductions   float64
	SGKEmployee  float64
	Unemployment float64
	IncomeTax    float64
	StampTax     float64
	Net          float64
}

// CalculatePayroll sabit oranlarla bordro hesaplar. Tüm tutarlar iki ondalığa yuvarlanır, net negatif olamaz.
func CalculatePayroll(rates config.PayrollConfig, gross, bonus, deductions float64) PayrollBreakdown {
	gross = round2(gross)
	bonus = round2(bonus)
	deductions = round2(deductions)

	sgk := round2(gross * rates.SGKEmployeeRate)
	unemp := round2(gross * rates.UnemploymentRate)
	taxable := gross + bonus - sgk - unemp
	if taxable < 0 {
		taxable = 0
	}
	incomeTax := round2(taxable * rates.IncomeTaxRate)
	stamp := round2((gross + bonus) * rates.StampTaxRate)

	net := round2(gross + bonus - sgk - unemp - incomeTax - stamp - deductions)
	if net < 0 {
		net = 0
	}

	return PayrollBreakdown{
		Gross:        gross,
		Bonus:        bonus,
		Deductions:   deductions,
		SGKEmployee:  sgk,
		Unemployment: unemp,
		IncomeTax:    incomeTax,
		StampTax:     stamp,
		Net:          net,
	}
}

// PayrollService bordro iş arayüzü
type PayrollService interface {
	Generate(ctx context.Context, req *dto.GeneratePayrollRequest, callerID string) (*dto.GeneratePayrollResponse, error)
	GetByID(ctx context.Context, id string, caller Caller) (*dto.PayrollResponse, error)
	List(ctx context.Context, req *dto.PayrollListRequest, caller Caller) ([]dto.PayrollResponse, int64, error)
	ListOwn(ctx context.Context, employeeID string, req *dto.PayrollListRequest) ([]dto.PayrollResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdatePayrollRequest, callerID string) (*dto.PayrollResponse, error)
	Approve(ctx context.Context, id string, callerID string) (*dto.PayrollResponse, error)
	Pay(ctx context.Context, id string, callerID string) (*dto.PayrollResponse, error)
	Summary(ctx context.Context, year, month int) (*dto.PayrollSummaryResponse, error)
}

type payrollService struct {
	cfg      *config.Config
	repo     *repository.Repository
	notifier Notifier
	logger   *zap.Logger
}

// NewPayrollService PayrollService örneği oluşturur
func NewPayrollService(cfg *config.Config, repo *repository.Repository, notifier Notifier, logger *zap.Logger) PayrollService {
	return &payrollService{cfg: cfg, repo: repo, notifier: notifier, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Generate dönem bordrolarını toplu üretir
// ═══════════════════════════════════════════════════════════
//
// İşten ayrılmamış ve dönem için bordrosu olmayan her çalışana taslak
// bordro açılır. Tüm kayıtlar tek işlemde yazılır.

func (s *payrollService) Generate(ctx context.Context, req *dto.GeneratePayrollRequest, callerID string) (*dto.GeneratePayrollResponse, error) {
	if req.Month < 1 || req.Month > 12 || req.Year < 2000 {
		return nil, ErrPayrollPeriodInvalid
	}

	emps, err := s.repo.Employee.ListActive(ctx)
	if err != nil {
		s.logger.Error("aktif çalışanlar listelenemedi", zap.Error(err))
		return nil, err
	}
	existing, err := s.repo.Payroll.ListEmployeeIDsForPeriod(ctx, req.Year, req.Month)
	if err != nil {
		s.logger.Error("dönem bordroları sorgulanamadı", zap.Error(err))
		return nil, err
	}
	has := make(map[string]bool, len(existing))
	for _, id := range existing {
		has[id] = true
	}

	resp := &dto.GeneratePayrollResponse{Year: req.Year, Month: req.Month}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("işlem başlatılamadı", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()
	txRepo := s.repo.WithTx(tx)

	for i := range emps {
		emp := &emps[i]
		if has[emp.EmployeeID] {
			resp.Skipped++
			continue
		}

		calc := CalculatePayroll(s.cfg.Payroll, emp.GrossSalary, 0, 0)
		payroll := &model.Payroll{
			EmployeeID:  emp.EmployeeID,
			PeriodYear:  req.Year,
			PeriodMonth: req.Month,
			Currency:    s.cfg.Payroll.Currency,
			Status:      model.PayrollStatusDraft,
			Version:     1,
		}
		applyBreakdown(payroll, calc)
		payroll.Audit(callerID)

		if err := txRepo.Payroll.Create(ctx, payroll); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			if errors.Is(err, database.ErrDuplicate) {
				return nil, fmt.Errorf("%s için %d/%d bordrosu zaten var: %w", emp.FullName(), req.Month, req.Year, err)
			}
			s.logger.Error("bordro oluşturulamadı, işlem geri alındı", zap.String("employee_id", emp.EmployeeID), zap.Error(err))
			return nil, err
		}
		resp.Created++
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("işlem onaylanamadı", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("bordrolar üretildi",
		zap.Int("year", req.Year), zap.Int("month", req.Month),
		zap.Int("created", resp.Created), zap.Int("skipped", resp.Skipped))
	return resp, nil
}

// ────────────────────── GetByID / List ──────────────────────

func (s *payrollService) GetByID(ctx context.Context, id string, caller Caller) (*dto.PayrollResponse, error) {
	payroll, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsHR() && (payroll.EmployeeID != caller.EmployeeID || payroll.Status == model.PayrollStatusDraft) {
		return nil, ErrNoPermission
	}
	resp := toPayrollResponse(payroll)
	return &resp, nil
}

// List çalışanlar yalnızca kendi bordrolarını görür
func (s *payrollService) List(ctx context.Context, req *dto.PayrollListRequest, caller Caller) ([]dto.PayrollResponse, int64, error) {
	if !caller.IsHR() {
		return s.ListOwn(ctx, caller.EmployeeID, req)
	}
	return s.list(ctx, repository.PayrollFilter{
		Year:       req.Year,
		Month:      req.Month,
		EmployeeID: req.EmployeeID,
		Status:     req.Status,
		Offset:     req.GetOffset(),
		Limit:      req.GetPageSize(),
	})
}

// ListOwn çalışanın taslak olmayan bordroları
func (s *payrollService) ListOwn(ctx context.Context, employeeID string, req *dto.PayrollListRequest) ([]dto.PayrollResponse, int64, error) {
	if req.Status == model.PayrollStatusDraft {
		return []dto.PayrollResponse{}, 0, nil
	}
	return s.list(ctx, repository.PayrollFilter{
		Year:         req.Year,
		Month:        req.Month,
		EmployeeID:   employeeID,
		Status:       req.Status,
		ExcludeDraft: true,
		Offset:       req.GetOffset(),
		Limit:        req.GetPageSize(),
	})
}

func (s *payrollService) list(ctx context.Context, filter repository.PayrollFilter) ([]dto.PayrollResponse, int64, error) {
	payrolls, total, err := s.repo.Payroll.List(ctx, filter)
	if err != nil {
		s.logger.Error("bordrolar listelenemedi", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.PayrollResponse, 0, len(payrolls))
	for i := range payrolls {
		list = append(list, toPayrollResponse(&payrolls[i]))
	}
	return list, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *payrollService) Update(ctx context.Context, id string, req *dto.UpdatePayrollRequest, callerID string) (*dto.PayrollResponse, error) {
	payroll, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if payroll.Status != model.PayrollStatusDraft {
		return nil, ErrPayrollNotDraft
	}

	bonus, deductions := payroll.Bonus, payroll.Deductions
	if req.Bonus != nil {
		bonus = *req.Bonus
	}
	if req.Deductions != nil {
		deductions = *req.Deductions
	}
	applyBreakdown(payroll, CalculatePayroll(s.cfg.Payroll, payroll.GrossSalary, bonus, deductions))
	payroll.Audit(callerID)

	if err := s.save(ctx, payroll); err != nil {
		return nil, err
	}
	resp := toPayrollResponse(payroll)
	return &resp, nil
}

// ────────────────────── Approve / Pay ──────────────────────

func (s *payrollService) Approve(ctx context.Context, id string, callerID string) (*dto.PayrollResponse, error) {
	payroll, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if payroll.Status != model.PayrollStatusDraft {
		return nil, ErrPayrollNotDraft
	}

	now := time.Now()
	payroll.Status = model.PayrollStatusApproved
	payroll.ApprovedBy = &callerID
	payroll.ApprovedAt = &now
	payroll.Audit(callerID)

	if err := s.save(ctx, payroll); err != nil {
		return nil, err
	}
	resp := toPayrollResponse(payroll)
	return &resp, nil
}

func (s *payrollService) Pay(ctx context.Context, id string, callerID string) (*dto.PayrollResponse, error) {
	payroll, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if payroll.Status != model.PayrollStatusApproved {
		return nil, ErrPayrollNotApproved
	}

	now := time.Now()
	payroll.Status = model.PayrollStatusPaid
	payroll.PaidAt = &now
	payroll.Audit(callerID)

	if err := s.save(ctx, payroll); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, Notice{
		EmployeeID:  payroll.EmployeeID,
		Type:        model.NotificationPayrollPaid,
		Title:       "Maaşınız ödendi",
		Content:     fmt.Sprintf("%02d/%d dönemi net maaşınız %.2f %s olarak ödendi.", payroll.PeriodMonth, payroll.PeriodYear, payroll.NetSalary, payroll.Currency),
		RelatedType: "payroll",
		RelatedID:   payroll.PayrollID,
	})

	resp := toPayrollResponse(payroll)
	return &resp, nil
}

// ────────────────────── Summary ──────────────────────

func (s *payrollService) Summary(ctx context.Context, year, month int) (*dto.PayrollSummaryResponse, error) {
	if month < 1 || month > 12 || year < 2000 {
		return nil, ErrPayrollPeriodInvalid
	}
	totals, err := s.repo.Payroll.Totals(ctx, year, month)
	if err != nil {
		s.logger.Error("bordro toplamları hesaplanamadı", zap.Error(err))
		return nil, err
	}

	avg := 0.0
	if totals.Count > 0 {
		avg = round2(totals.Net / float64(totals.Count))
	}
	return &dto.PayrollSummaryResponse{
		Year:              year,
		Month:             month,
		Count:             totals.Count,
		TotalGross:        round2(totals.Gross),
		TotalBonus:        round2(totals.Bonus),
		TotalDeductions:   round2(totals.Deductions),
		TotalSGK:          round2(totals.SGKEmployee),
		TotalUnemployment: round2(totals.Unemployment),
		TotalIncomeTax:    round2(totals.IncomeTax),
		TotalStampTax:     round2(totals.StampTax),
		TotalNet:          round2(totals.Net),
		AverageNet:        avg,
		Currency:          s.cfg.Payroll.Currency,
	}, nil
}

// ── İç yardımcılar ──

func (s *payrollService) get(ctx context.Context, id string) (*model.Payroll, error) {
	payroll, err := s.repo.Payroll.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayrollNotFound
		}
		s.logger.Error("bordro sorgulanamadı", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return payroll, nil
}

func (s *payrollService) save(ctx context.Context, payroll *model.Payroll) error {
	if err := s.repo.Payroll.Update(ctx, payroll); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return ErrPayrollConcurrent
		}
		s.logger.Error("bordro güncellenemedi", zap.String("id", payroll.PayrollID), zap.Error(err))
		return err
	}
	return nil
}

func applyBreakdown(p *model.Payroll, b PayrollBreakdown) {
	p.GrossSalary = b.Gross
	p.Bonus = b.Bonus
	p.Deductions = b.Deductions
	p.SGKEmployee = b.SGKEmployee
	p.Unemployment = b.Unemployment
	p.IncomeTax = b.IncomeTax
	p.StampTax = b.StampTax
	p.NetSalary = b.Net
}

func toPayrollResponse(p *model.Payroll) dto.PayrollResponse {
	return dto.PayrollResponse{
		ID:           p.PayrollID,
		Employee:     employeeRef(p.Employee),
		EmployeeID:   p.EmployeeID,
		PeriodYear:   p.PeriodYear,
		PeriodMonth:  p.PeriodMonth,
		GrossSalary:  p.GrossSalary,
		Bonus:        p.Bonus,
		Deductions:   p.Deductions,
		SGKEmployee:  p.SGKEmployee,
		Unemployment: p.Unemployment,
		IncomeTax:    p.IncomeTax,
		StampTax:     p.StampTax,
		NetSalary:    p.NetSalary,
		Currency:     p.Currency,
		Status:       p.Status,
		ApprovedAt:   formatTimePtr(p.ApprovedAt),
		PaidAt:       formatTimePtr(p.PaidAt),
	}
}
