package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
)

func setupTestPerformanceService() (PerformanceService, *testRepos, *recordingNotifier) {
	repo, mocks := newTestRepository()
	notifier := &recordingNotifier{}

	mocks.employee.emps["emp-1"] = &model.Employee{
		EmployeeID: "emp-1", FirstName: "Mehmet", LastName: "Yılmaz", Email: "mehmet@firma.com.tr",
		Role: model.RoleEmployee, Status: model.EmployeeStatusActive,
	}
	mocks.employee.emps["emp-manager"] = &model.Employee{
		EmployeeID: "emp-manager", FirstName: "Ayşe", LastName: "Kaya", Email: "ayse@firma.com.tr",
		Role: model.RoleHRManager, Status: model.EmployeeStatusActive,
	}

	return NewPerformanceService(repo, notifier, zap.NewNop()), mocks, notifier
}

func createDraftReview(t *testing.T, svc PerformanceService, score float64) *dto.ReviewResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), &dto.CreateReviewRequest{
		EmployeeID: "emp-1",
		Period:     "2026-Q1",
		Score:      score,
		Goals:      "Raporlama sürecini otomatikleştirmek",
	}, "emp-manager")
	if err != nil {
		t.Fatalf("değerlendirme oluşturulamadı: %v", err)
	}
	return resp
}

func TestPerformanceService_Create_RoundsScore(t *testing.T) {
	svc, _, _ := setupTestPerformanceService()

	resp := createDraftReview(t, svc, 4.26)
	if resp.Score != 4.3 {
		t.Errorf("score = %v, want 4.3", resp.Score)
	}
	if resp.Status != model.ReviewStatusDraft {
		t.Errorf("status = %q, want draft", resp.Status)
	}
	if resp.Employee == nil || resp.Employee.Name != "Mehmet Yılmaz" {
		t.Errorf("employee = %+v, want Mehmet Yılmaz", resp.Employee)
	}
}

func TestPerformanceService_Create_Errors(t *testing.T) {
	svc, _, _ := setupTestPerformanceService()
	ctx := context.Background()

	tests := []struct {
		name     string
		req      dto.CreateReviewRequest
		callerID string
		wantErr  error
	}{
		{"kendi değerlendirmesi", dto.CreateReviewRequest{EmployeeID: "emp-1", Period: "2026-Q1", Score: 4}, "emp-1", ErrReviewSelf},
		{"puan sınır dışı", dto.CreateReviewRequest{EmployeeID: "emp-1", Period: "2026-Q1", Score: 5.2}, "emp-manager", ErrReviewScoreBounds},
		{"bilinmeyen çalışan", dto.CreateReviewRequest{EmployeeID: "emp-x", Period: "2026-Q1", Score: 3}, "emp-manager", ErrEmployeeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.Create(ctx, &req, tt.callerID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPerformanceService_Lifecycle(t *testing.T) {
	svc, _, notifier := setupTestPerformanceService()
	ctx := context.Background()
	review := createDraftReview(t, svc, 4)

	// Taslak doğrudan kesinleştirilemez
	if _, err := svc.Finalize(ctx, review.ID, "emp-manager"); !errors.Is(err, ErrReviewNotSubmit) {
		t.Fatalf("taslak kesinleştirme err = %v, want ErrReviewNotSubmit", err)
	}

	submitted, err := svc.Submit(ctx, review.ID, "emp-manager")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if submitted.Status != model.ReviewStatusSubmitted {
		t.Errorf("status = %q, want submitted", submitted.Status)
	}
	if _, err := svc.Submit(ctx, review.ID, "emp-manager"); !errors.Is(err, ErrReviewNotDraft) {
		t.Errorf("ikinci Submit err = %v, want ErrReviewNotDraft", err)
	}

	finalized, err := svc.Finalize(ctx, review.ID, "emp-manager")
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if finalized.Status != model.ReviewStatusFinalized || finalized.FinalizedAt == "" {
		t.Errorf("finalized = %+v", finalized)
	}
	if notifier.count() != 1 {
		t.Fatalf("bildirim sayısı = %d, want 1", notifier.count())
	}
	if n := notifier.notices[0]; n.EmployeeID != "emp-1" || n.Type != model.NotificationReviewFinalized {
		t.Errorf("bildirim = %+v", n)
	}

	// Kesinleşmiş kayıt değiştirilemez
	score := 2.0
	if _, err := svc.Update(ctx, review.ID, &dto.UpdateReviewRequest{Score: &score}, "emp-manager"); !errors.Is(err, ErrReviewFinalized) {
		t.Errorf("Update err = %v, want ErrReviewFinalized", err)
	}
	if err := svc.Delete(ctx, review.ID, "emp-manager"); !errors.Is(err, ErrReviewFinalized) {
		t.Errorf("Delete err = %v, want ErrReviewFinalized", err)
	}
}

func TestPerformanceService_EmployeeVisibility(t *testing.T) {
	svc, _, _ := setupTestPerformanceService()
	ctx := context.Background()
	review := createDraftReview(t, svc, 3.5)

	// Çalışan taslağı göremez
	if _, err := svc.GetByID(ctx, review.ID, employeeCaller); !errors.Is(err, ErrNoPermission) {
		t.Errorf("taslak GetByID err = %v, want ErrNoPermission", err)
	}
	list, total, err := svc.List(ctx, &dto.ReviewListRequest{}, employeeCaller)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 0 || len(list) != 0 {
		t.Errorf("çalışan listesi = %d kayıt, want 0", total)
	}

	if _, err := svc.Submit(ctx, review.ID, "emp-manager"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Finalize(ctx, review.ID, "emp-manager"); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	got, err := svc.GetByID(ctx, review.ID, employeeCaller)
	if err != nil {
		t.Fatalf("kesinleşmiş GetByID: %v", err)
	}
	if got.Score != 3.5 {
		t.Errorf("score = %v, want 3.5", got.Score)
	}
	_, total, _ = svc.List(ctx, &dto.ReviewListRequest{}, employeeCaller)
	if total != 1 {
		t.Errorf("çalışan listesi = %d kayıt, want 1", total)
	}
}

func TestPerformanceService_Summary(t *testing.T) {
	svc, _, _ := setupTestPerformanceService()
	ctx := context.Background()

	empty, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if empty.OverallAverage != 0 || empty.ReviewCount != 0 || len(empty.Departments) != 0 {
		t.Errorf("boş özet = %+v", empty)
	}

	for _, score := range []float64{4, 3} {
		r := createDraftReview(t, svc, score)
		if _, err := svc.Submit(ctx, r.ID, "emp-manager"); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	// Taslaklar ortalamaya girmez
	createDraftReview(t, svc, 1)

	sum, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.OverallAverage != 3.5 || sum.ReviewCount != 2 {
		t.Errorf("özet = %+v, want ortalama 3.5 / 2 kayıt", sum)
	}
	if len(sum.Departments) != 1 || sum.Departments[0].DepartmentName != "Departmansız" {
		t.Errorf("departmanlar = %+v", sum.Departments)
	}
}
