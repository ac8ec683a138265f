package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
)

func setupTestLeaveService() (LeaveService, *testRepos, *recordingNotifier) {
	repo, mocks := newTestRepository()
	notifier := &recordingNotifier{}

	managerID := "emp-manager"
	deptID := "dept-it"
	mocks.department.depts[deptID] = &model.Department{DepartmentID: deptID, Name: "Bilgi İşlem", ManagerID: &managerID, IsActive: true}

	mocks.employee.emps[managerID] = &model.Employee{
		EmployeeID: managerID, FirstName: "Ayşe", LastName: "Kaya", Email: "ayse@firma.com.tr",
		Role: model.RoleHRManager, Status: model.EmployeeStatusActive, AnnualLeaveDays: 20,
	}
	mocks.employee.emps["emp-1"] = &model.Employee{
		EmployeeID: "emp-1", FirstName: "Mehmet", LastName: "Yılmaz", Email: "mehmet@firma.com.tr",
		Role: model.RoleEmployee, Status: model.EmployeeStatusActive, AnnualLeaveDays: 14,
		DepartmentID: &deptID, Department: mocks.department.depts[deptID],
	}

	return NewLeaveService(repo, notifier, zap.NewNop()), mocks, notifier
}

var (
	employeeCaller = Caller{EmployeeID: "emp-1", Role: model.RoleEmployee}
	hrCaller       = Caller{EmployeeID: "emp-manager", Role: model.RoleHRManager}
)

// ── BusinessDays ──

func TestBusinessDays(t *testing.T) {
	day := func(s string) time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return d
	}
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"tam hafta", "2026-03-02", "2026-03-06", 5},
		{"hafta sonu dahil", "2026-03-02", "2026-03-08", 5},
		{"yalnız hafta sonu", "2026-03-07", "2026-03-08", 0},
		{"tek gün", "2026-03-04", "2026-03-04", 1},
		{"iki hafta", "2026-03-02", "2026-03-13", 10},
		{"ters aralık", "2026-03-06", "2026-03-02", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BusinessDays(day(tt.start), day(tt.end)); got != tt.want {
				t.Errorf("BusinessDays(%s, %s) = %d, beklenen %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

// ── Create ──

func TestLeaveService_Create_Success(t *testing.T) {
	svc, mocks, notifier := setupTestLeaveService()

	resp, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeAnnual,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-08",
		Reason:    "Aile ziyareti",
	}, employeeCaller)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if resp.TotalDays != 5 {
		t.Errorf("TotalDays = %d, beklenen 5", resp.TotalDays)
	}
	if resp.Status != model.LeaveStatusPending {
		t.Errorf("Status = %s, beklenen pending", resp.Status)
	}
	if len(mocks.leave.leaves) != 1 {
		t.Errorf("kayıt sayısı = %d, beklenen 1", len(mocks.leave.leaves))
	}
	if notifier.count() != 1 || notifier.notices[0].EmployeeID != "emp-manager" {
		t.Errorf("departman yöneticisine bildirim gitmeli: %+v", notifier.notices)
	}
}

func TestLeaveService_Create_WeekendOnly(t *testing.T) {
	svc, _, _ := setupTestLeaveService()

	_, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeAnnual, StartDate: "2026-03-07", EndDate: "2026-03-08",
	}, employeeCaller)
	if !errors.Is(err, ErrLeaveNoBusinessDays) {
		t.Errorf("ErrLeaveNoBusinessDays bekleniyordu, alınan: %v", err)
	}
}

func TestLeaveService_Create_InvalidPeriod(t *testing.T) {
	svc, _, _ := setupTestLeaveService()

	_, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeSick, StartDate: "2026-03-06", EndDate: "2026-03-02",
	}, employeeCaller)
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("ErrInvalidPeriod bekleniyordu, alınan: %v", err)
	}
}

func TestLeaveService_Create_AnnualAcrossYearEnd(t *testing.T) {
	svc, _, _ := setupTestLeaveService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeAnnual, StartDate: "2026-12-29", EndDate: "2027-01-05",
	}, employeeCaller)
	if !errors.Is(err, ErrLeaveCrossesYear) {
		t.Errorf("ErrLeaveCrossesYear bekleniyordu, alınan: %v", err)
	}

	// Diğer izin türleri yıl sonunu aşabilir
	if _, err := svc.Create(ctx, &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeSick, StartDate: "2026-12-29", EndDate: "2027-01-05",
	}, employeeCaller); err != nil {
		t.Errorf("raporlu izin: %v", err)
	}
}

func TestLeaveService_Create_Overlap(t *testing.T) {
	svc, _, _ := setupTestLeaveService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeSick, StartDate: "2026-03-02", EndDate: "2026-03-04",
	}, employeeCaller); err != nil {
		t.Fatalf("ilk talep: %v", err)
	}
	_, err := svc.Create(ctx, &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeSick, StartDate: "2026-03-04", EndDate: "2026-03-05",
	}, employeeCaller)
	if !errors.Is(err, ErrLeaveOverlap) {
		t.Errorf("ErrLeaveOverlap bekleniyordu, alınan: %v", err)
	}
}

func TestLeaveService_Create_BalanceExceeded(t *testing.T) {
	svc, _, _ := setupTestLeaveService()

	// 3 hafta = 15 iş günü > 14
	_, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeAnnual, StartDate: "2026-03-02", EndDate: "2026-03-20",
	}, employeeCaller)
	if !errors.Is(err, ErrLeaveBalanceExceeded) {
		t.Errorf("ErrLeaveBalanceExceeded bekleniyordu, alınan: %v", err)
	}
}

func TestLeaveService_Create_ForOtherNeedsHR(t *testing.T) {
	svc, _, _ := setupTestLeaveService()

	_, err := svc.Create(context.Background(), &dto.CreateLeaveRequest{
		EmployeeID: "emp-manager", LeaveType: model.LeaveTypeSick, StartDate: "2026-03-02", EndDate: "2026-03-02",
	}, employeeCaller)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("ErrNoPermission bekleniyordu, alınan: %v", err)
	}
}

// ── Approve / Reject / Cancel ──

func TestLeaveService_Approve_RemovesFromPending(t *testing.T) {
	svc, _, notifier := setupTestLeaveService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeAnnual, StartDate: "2026-03-02", EndDate: "2026-03-04",
	}, employeeCaller)
	if err != nil {
		t.Fatalf("talep oluşturulamadı: %v", err)
	}

	pending, _ := svc.ListPending(ctx)
	if len(pending) != 1 {
		t.Fatalf("bekleyen sayısı = %d, beklenen 1", len(pending))
	}

	approved, err := svc.Approve(ctx, created.ID, hrCaller)
	if err != nil {
		t.Fatalf("onay hatası: %v", err)
	}
	if approved.Status != model.LeaveStatusApproved {
		t.Errorf("Status = %s, beklenen approved", approved.Status)
	}
	if approved.ApprovedBy != hrCaller.EmployeeID {
		t.Errorf("ApprovedBy = %s", approved.ApprovedBy)
	}

	pending, _ = svc.ListPending(ctx)
	if len(pending) != 0 {
		t.Errorf("onaydan sonra bekleyen listesi boş olmalı, %d kayıt var", len(pending))
	}

	balance, err := svc.Balance(ctx, "emp-1", 2026)
	if err != nil {
		t.Fatalf("bakiye hatası: %v", err)
	}
	if balance.UsedDays != 3 || balance.RemainingDays != 11 {
		t.Errorf("bakiye = %+v, beklenen kullanılan 3 kalan 11", balance)
	}

	// talep + onay bildirimi
	if notifier.count() != 2 {
		t.Errorf("bildirim sayısı = %d, beklenen 2", notifier.count())
	}
}

func TestLeaveService_Approve_Twice(t *testing.T) {
	svc, _, _ := setupTestLeaveService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeSick, StartDate: "2026-03-02", EndDate: "2026-03-02",
	}, employeeCaller)
	if _, err := svc.Approve(ctx, created.ID, hrCaller); err != nil {
		t.Fatalf("ilk onay: %v", err)
	}
	_, err := svc.Approve(ctx, created.ID, hrCaller)
	if !errors.Is(err, ErrLeaveNotPending) {
		t.Errorf("ErrLeaveNotPending bekleniyordu, alınan: %v", err)
	}
}

func TestLeaveService_Approve_Self(t *testing.T) {
	svc, _, _ := setupTestLeaveService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeSick, StartDate: "2026-03-02", EndDate: "2026-03-02",
	}, hrCaller)
	if err != nil {
		t.Fatalf("talep oluşturulamadı: %v", err)
	}
	_, err = svc.Approve(ctx, created.ID, hrCaller)
	if !errors.Is(err, ErrLeaveSelfApproval) {
		t.Errorf("ErrLeaveSelfApproval bekleniyordu, alınan: %v", err)
	}
}

func TestLeaveService_Reject_NeedsReason(t *testing.T) {
	svc, _, _ := setupTestLeaveService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeSick, StartDate: "2026-03-02", EndDate: "2026-03-02",
	}, employeeCaller)

	if _, err := svc.Reject(ctx, created.ID, "", hrCaller); !errors.Is(err, ErrLeaveRejectNeedReason) {
		t.Errorf("ErrLeaveRejectNeedReason bekleniyordu, alınan: %v", err)
	}
	resp, err := svc.Reject(ctx, created.ID, "Yoğun dönem", hrCaller)
	if err != nil {
		t.Fatalf("ret hatası: %v", err)
	}
	if resp.Status != model.LeaveStatusRejected || resp.RejectionReason != "Yoğun dönem" {
		t.Errorf("beklenmeyen yanıt: %+v", resp)
	}
}

func TestLeaveService_Cancel_OnlyOwner(t *testing.T) {
	svc, _, _ := setupTestLeaveService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, &dto.CreateLeaveRequest{
		LeaveType: model.LeaveTypeSick, StartDate: "2026-03-02", EndDate: "2026-03-02",
	}, employeeCaller)

	if _, err := svc.Cancel(ctx, created.ID, hrCaller); !errors.Is(err, ErrNoPermission) {
		t.Errorf("ErrNoPermission bekleniyordu, alınan: %v", err)
	}
	resp, err := svc.Cancel(ctx, created.ID, employeeCaller)
	if err != nil {
		t.Fatalf("iptal hatası: %v", err)
	}
	if resp.Status != model.LeaveStatusCancelled {
		t.Errorf("Status = %s, beklenen cancelled", resp.Status)
	}
}

func TestLeaveService_List_EmployeeSeesOwn(t *testing.T) {
	svc, _, _ := setupTestLeaveService()
	ctx := context.Background()

	svc.Create(ctx, &dto.CreateLeaveRequest{LeaveType: model.LeaveTypeSick, StartDate: "2026-03-02", EndDate: "2026-03-02"}, employeeCaller)
	svc.Create(ctx, &dto.CreateLeaveRequest{LeaveType: model.LeaveTypeSick, StartDate: "2026-03-10", EndDate: "2026-03-10"}, hrCaller)

	list, total, err := svc.List(ctx, &dto.LeaveListRequest{}, employeeCaller)
	if err != nil {
		t.Fatalf("liste hatası: %v", err)
	}
	if total != 1 || list[0].EmployeeID != "emp-1" {
		t.Errorf("çalışan yalnız kendi iznini görmeli: total=%d", total)
	}

	_, total, _ = svc.List(ctx, &dto.LeaveListRequest{}, hrCaller)
	if total != 2 {
		t.Errorf("İK tüm izinleri görmeli: total=%d", total)
	}
}
