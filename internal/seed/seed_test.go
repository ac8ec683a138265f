package seed

import (
	"testing"
	"time"

	"hr-intelligence/backend/config"
	"hr-intelligence/backend/internal/model"
)

var testRates = config.PayrollConfig{
	SGKEmployeeRate:  0.14,
	UnemploymentRate: 0.01,
	IncomeTaxRate:    0.15,
	StampTaxRate:     0.00759,
	Currency:         "TRY",
}

func TestBuildFixtures_Consistency(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	f := buildFixtures(now, "admin-hash", "emp-hash", testRates, 14)

	if len(f.Companies) != 1 || len(f.Departments) != 4 || len(f.Employees) != len(people) {
		t.Fatalf("beklenmeyen kayıt sayıları: %d şirket, %d departman, %d çalışan",
			len(f.Companies), len(f.Departments), len(f.Employees))
	}

	employeeIDs := map[string]bool{}
	emails := map[string]bool{}
	for _, e := range f.Employees {
		if emails[e.Email] {
			t.Errorf("e-posta tekrarlandı: %s", e.Email)
		}
		emails[e.Email] = true
		employeeIDs[e.EmployeeID] = true
		if e.NationalID == nil || len(*e.NationalID) != 11 {
			t.Errorf("%s için TCKN 11 hane olmalı", e.Email)
		}
	}

	admin := f.Employees[0]
	if admin.Role != model.RoleAdmin || admin.PasswordHash != "admin-hash" || admin.MustChangePassword {
		t.Errorf("ilk çalışan şifre değiştirme zorunluluğu olmayan yönetici olmalı: %+v", admin)
	}
	for _, e := range f.Employees[1:] {
		if e.PasswordHash != "emp-hash" || !e.MustChangePassword {
			t.Errorf("%s ilk girişte şifre değiştirmeli", e.Email)
		}
	}

	for _, d := range f.Departments {
		if d.ManagerID == nil || !employeeIDs[*d.ManagerID] {
			t.Errorf("%s departmanının yöneticisi çalışanlar arasında olmalı", d.Name)
		}
	}
	for _, l := range f.Leaves {
		if !employeeIDs[l.EmployeeID] {
			t.Errorf("izin bilinmeyen çalışana bağlı: %s", l.EmployeeID)
		}
		if l.TotalDays < 1 {
			t.Errorf("izin en az bir iş günü olmalı, gelen %d", l.TotalDays)
		}
		if wd := l.StartDate.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("izin hafta sonu başlamamalı: %s", l.StartDate)
		}
	}
}

func TestBuildFixtures_Payrolls(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	f := buildFixtures(now, "a", "b", testRates, 14)

	if len(f.Payrolls) != len(f.Employees) {
		t.Fatalf("her çalışana bir bordro bekleniyordu, gelen %d", len(f.Payrolls))
	}
	for _, p := range f.Payrolls {
		if p.PeriodYear != 2025 || p.PeriodMonth != 12 {
			t.Errorf("bordro dönemi bir önceki ay olmalı, gelen %d/%d", p.PeriodYear, p.PeriodMonth)
		}
		if p.Status != model.PayrollStatusPaid || p.PaidAt == nil {
			t.Errorf("örnek bordrolar ödenmiş olmalı")
		}
		if p.NetSalary <= 0 || p.NetSalary >= p.GrossSalary {
			t.Errorf("net maaş brütten küçük ve pozitif olmalı: brüt %.2f net %.2f", p.GrossSalary, p.NetSalary)
		}
	}
}

func TestBuildFixtures_RecruitmentAndTraining(t *testing.T) {
	f := buildFixtures(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "a", "b", testRates, 0)

	open := 0
	for _, p := range f.Postings {
		if p.Status == model.PostingStatusOpen {
			open++
		}
		if p.SalaryMin != nil && p.SalaryMax != nil && *p.SalaryMin > *p.SalaryMax {
			t.Errorf("%s için maaş aralığı ters", p.Title)
		}
	}
	if open != 1 {
		t.Errorf("bir açık ilan bekleniyordu, gelen %d", open)
	}
	for _, a := range f.Applications {
		if a.JobPostingID != f.Postings[0].JobPostingID {
			t.Errorf("başvurular açık ilana bağlı olmalı")
		}
	}

	perTraining := map[string]int{}
	for _, e := range f.Enrollments {
		perTraining[e.TrainingID]++
	}
	for _, tr := range f.Trainings {
		if tr.Capacity > 0 && perTraining[tr.TrainingID] > tr.Capacity {
			t.Errorf("%s kontenjanı aşıldı", tr.Title)
		}
	}
	if f.Employees[1].AnnualLeaveDays != 14 {
		t.Errorf("yıllık izin varsayılanı 14 olmalı, gelen %d", f.Employees[1].AnnualLeaveDays)
	}
}

func TestNextWeekday(t *testing.T) {
	sat := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if got := nextWeekday(sat); got.Weekday() != time.Monday || got.Day() != 16 {
		t.Errorf("cumartesi pazartesiye kaymalı, gelen %s", got)
	}
	wed := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	if got := nextWeekday(wed); !got.Equal(wed) {
		t.Errorf("hafta içi değişmemeli, gelen %s", got)
	}
}
