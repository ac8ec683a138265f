package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"hr-intelligence/backend/config"
	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
)

var testPayrollRates = config.PayrollConfig{
	SGKEmployeeRate:  0.14,
	UnemploymentRate: 0.01,
	IncomeTaxRate:    0.15,
	StampTaxRate:     0.00759,
	Currency:         "TRY",
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func setupTestPayrollService() (PayrollService, *testRepos, *recordingNotifier) {
	repo, mocks := newTestRepository()
	notifier := &recordingNotifier{}
	cfg := &config.Config{Payroll: testPayrollRates}

	mocks.employee.emps["emp-1"] = &model.Employee{
		EmployeeID: "emp-1", FirstName: "Mehmet", LastName: "Yılmaz",
		Status: model.EmployeeStatusActive, GrossSalary: 30000,
	}
	mocks.employee.emps["emp-2"] = &model.Employee{
		EmployeeID: "emp-2", FirstName: "Zeynep", LastName: "Demir",
		Status: model.EmployeeStatusOnLeave, GrossSalary: 45000,
	}
	mocks.employee.emps["emp-3"] = &model.Employee{
		EmployeeID: "emp-3", FirstName: "Ali", LastName: "Çelik",
		Status: model.EmployeeStatusTerminated, GrossSalary: 25000,
	}

	return NewPayrollService(cfg, repo, notifier, zap.NewNop()), mocks, notifier
}

// ── CalculatePayroll ──

func TestCalculatePayroll(t *testing.T) {
	tests := []struct {
		name                     string
		gross, bonus, deductions float64
		want                     PayrollBreakdown
	}{
		{
			name:  "yalnız brüt",
			gross: 30000,
			want: PayrollBreakdown{
				Gross: 30000, SGKEmployee: 4200, Unemployment: 300,
				IncomeTax: 3825, StampTax: 227.7, Net: 21447.3,
			},
		},
		{
			name:  "primli",
			gross: 10000, bonus: 2000,
			want: PayrollBreakdown{
				Gross: 10000, Bonus: 2000, SGKEmployee: 1400, Unemployment: 100,
				IncomeTax: 1575, StampTax: 91.08, Net: 8833.92,
			},
		},
		{
			name:  "kesinti netten büyük",
			gross: 1000, deductions: 5000,
			want: PayrollBreakdown{
				Gross: 1000, Deductions: 5000, SGKEmployee: 140, Unemployment: 10,
				IncomeTax: 127.5, StampTax: 7.59, Net: 0,
			},
		},
		{
			name: "sıfır",
			want: PayrollBreakdown{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePayroll(testPayrollRates, tt.gross, tt.bonus, tt.deductions)
			checks := []struct {
				field     string
				got, want float64
			}{
				{"Gross", got.Gross, tt.want.Gross},
				{"Bonus", got.Bonus, tt.want.Bonus},
				{"Deductions", got.Deductions, tt.want.Deductions},
				{"SGKEmployee", got.SGKEmployee, tt.want.SGKEmployee},
				{"Unemployment", got.Unemployment, tt.want.Unemployment},
				{"IncomeTax", got.IncomeTax, tt.want.IncomeTax},
				{"StampTax", got.StampTax, tt.want.StampTax},
				{"Net", got.Net, tt.want.Net},
			}
			for _, c := range checks {
				if !almostEqual(c.got, c.want) {
					t.Errorf("%s = %.2f, beklenen %.2f", c.field, c.got, c.want)
				}
			}
		})
	}
}

func TestCalculatePayroll_NetNeverNegative(t *testing.T) {
	for _, d := range []float64{0, 100, 1e6} {
		if got := CalculatePayroll(testPayrollRates, 500, 0, d); got.Net < 0 {
			t.Errorf("kesinti %.0f için net negatif: %.2f", d, got.Net)
		}
	}
}

// ── Generate ──

func TestPayrollService_Generate(t *testing.T) {
	svc, mocks, _ := setupTestPayrollService()
	ctx := context.Background()

	resp, err := svc.Generate(ctx, &dto.GeneratePayrollRequest{Year: 2026, Month: 3}, "emp-hr")
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	// ayrılan çalışana bordro açılmaz
	if resp.Created != 2 || resp.Skipped != 0 {
		t.Errorf("Created=%d Skipped=%d, beklenen 2/0", resp.Created, resp.Skipped)
	}
	for _, p := range mocks.payroll.payrolls {
		if p.Status != model.PayrollStatusDraft {
			t.Errorf("yeni bordro taslak olmalı: %s", p.Status)
		}
		if p.EmployeeID == "emp-1" && !almostEqual(p.NetSalary, 21447.3) {
			t.Errorf("emp-1 net = %.2f", p.NetSalary)
		}
	}

	again, err := svc.Generate(ctx, &dto.GeneratePayrollRequest{Year: 2026, Month: 3}, "emp-hr")
	if err != nil {
		t.Fatalf("ikinci üretim: %v", err)
	}
	if again.Created != 0 || again.Skipped != 2 {
		t.Errorf("ikinci üretimde Created=%d Skipped=%d, beklenen 0/2", again.Created, again.Skipped)
	}
}

func TestPayrollService_Generate_InvalidPeriod(t *testing.T) {
	svc, _, _ := setupTestPayrollService()

	_, err := svc.Generate(context.Background(), &dto.GeneratePayrollRequest{Year: 2026, Month: 13}, "emp-hr")
	if !errors.Is(err, ErrPayrollPeriodInvalid) {
		t.Errorf("ErrPayrollPeriodInvalid bekleniyordu, alınan: %v", err)
	}
}

// ── Workflow ──

func TestPayrollService_ApprovePayFlow(t *testing.T) {
	svc, mocks, notifier := setupTestPayrollService()
	ctx := context.Background()

	if _, err := svc.Generate(ctx, &dto.GeneratePayrollRequest{Year: 2026, Month: 3}, "emp-hr"); err != nil {
		t.Fatalf("üretim hatası: %v", err)
	}
	var id string
	for _, p := range mocks.payroll.payrolls {
		if p.EmployeeID == "emp-1" {
			id = p.PayrollID
		}
	}

	// ödeme onaysız yapılamaz
	if _, err := svc.Pay(ctx, id, "emp-hr"); !errors.Is(err, ErrPayrollNotApproved) {
		t.Errorf("ErrPayrollNotApproved bekleniyordu, alınan: %v", err)
	}

	// çalışan taslağı göremez
	employee := Caller{EmployeeID: "emp-1", Role: model.RoleEmployee}
	if _, err := svc.GetByID(ctx, id, employee); !errors.Is(err, ErrNoPermission) {
		t.Errorf("taslak çalışana kapalı olmalı: %v", err)
	}

	bonus := 2000.0
	updated, err := svc.Update(ctx, id, &dto.UpdatePayrollRequest{Bonus: &bonus}, "emp-hr")
	if err != nil {
		t.Fatalf("güncelleme hatası: %v", err)
	}
	if updated.Bonus != 2000 || updated.NetSalary <= 21447.3 {
		t.Errorf("prim neti artırmalı: %+v", updated)
	}

	if _, err := svc.Approve(ctx, id, "emp-hr"); err != nil {
		t.Fatalf("onay hatası: %v", err)
	}
	if _, err := svc.Update(ctx, id, &dto.UpdatePayrollRequest{Bonus: &bonus}, "emp-hr"); !errors.Is(err, ErrPayrollNotDraft) {
		t.Errorf("onaylı bordro düzenlenemez: %v", err)
	}

	paid, err := svc.Pay(ctx, id, "emp-hr")
	if err != nil {
		t.Fatalf("ödeme hatası: %v", err)
	}
	if paid.Status != model.PayrollStatusPaid {
		t.Errorf("Status = %s, beklenen paid", paid.Status)
	}
	if notifier.count() != 1 || notifier.notices[0].Type != model.NotificationPayrollPaid {
		t.Errorf("ödeme bildirimi bekleniyordu: %+v", notifier.notices)
	}

	own, total, err := svc.List(ctx, &dto.PayrollListRequest{}, employee)
	if err != nil {
		t.Fatalf("liste hatası: %v", err)
	}
	if total != 1 || own[0].ID != id {
		t.Errorf("çalışan yalnız kendi ödenmiş bordrosunu görmeli: total=%d", total)
	}
}

func TestPayrollService_Summary(t *testing.T) {
	svc, _, _ := setupTestPayrollService()
	ctx := context.Background()

	svc.Generate(ctx, &dto.GeneratePayrollRequest{Year: 2026, Month: 3}, "emp-hr")

	sum, err := svc.Summary(ctx, 2026, 3)
	if err != nil {
		t.Fatalf("özet hatası: %v", err)
	}
	if sum.Count != 2 || sum.TotalGross != 75000 {
		t.Errorf("Count=%d TotalGross=%.2f", sum.Count, sum.TotalGross)
	}
	if !almostEqual(sum.AverageNet, round2(sum.TotalNet/2)) {
		t.Errorf("AverageNet = %.2f", sum.AverageNet)
	}

	empty, _ := svc.Summary(ctx, 2026, 4)
	if empty.Count != 0 || empty.AverageNet != 0 {
		t.Errorf("boş dönem sıfır dönmeli: %+v", empty)
	}
}
