package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
)

type sentMail struct {
	to, subject, body string
}

// chanMailer gönderilen e-postaları kanala yazar
type chanMailer struct {
	sent chan sentMail
}

func (m *chanMailer) Send(_ context.Context, to, subject, body string) error {
	m.sent <- sentMail{to: to, subject: subject, body: body}
	return nil
}

func setupTestRecruitmentService() (RecruitmentService, *testRepos, *recordingNotifier, *chanMailer) {
	repo, mocks := newTestRepository()
	notifier := &recordingNotifier{}
	mailer := &chanMailer{sent: make(chan sentMail, 4)}
	return NewRecruitmentService(repo, notifier, mailer, zap.NewNop()), mocks, notifier, mailer
}

func floatPtr(v float64) *float64 { return &v }

func createOpenPosting(t *testing.T, svc RecruitmentService) *dto.PostingResponse {
	t.Helper()
	resp, err := svc.CreatePosting(context.Background(), &dto.CreatePostingRequest{
		Title:          "Kıdemli Go Geliştirici",
		Description:    "Ödeme altyapımızda çalışacak geliştirici arıyoruz.",
		EmploymentType: "full_time",
		SalaryMin:      floatPtr(80000),
		SalaryMax:      floatPtr(120000),
		Status:         model.PostingStatusOpen,
	}, "emp-hr")
	if err != nil {
		t.Fatalf("ilan oluşturulamadı: %v", err)
	}
	return resp
}

func TestCanTransitionApplication(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{model.ApplicationStatusReceived, model.ApplicationStatusReviewing, true},
		{model.ApplicationStatusReceived, model.ApplicationStatusRejected, true},
		{model.ApplicationStatusReceived, model.ApplicationStatusHired, false},
		{model.ApplicationStatusReviewing, model.ApplicationStatusInterview, true},
		{model.ApplicationStatusInterview, model.ApplicationStatusOffered, true},
		{model.ApplicationStatusOffered, model.ApplicationStatusHired, true},
		{model.ApplicationStatusInterview, model.ApplicationStatusReviewing, false},
		{model.ApplicationStatusHired, model.ApplicationStatusRejected, false},
		{model.ApplicationStatusRejected, model.ApplicationStatusReviewing, false},
		{model.ApplicationStatusReceived, model.ApplicationStatusReceived, false},
	}
	for _, tt := range tests {
		if got := CanTransitionApplication(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionApplication(%s, %s) = %v, beklenen %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestRecruitmentService_CreatePosting_SalaryRange(t *testing.T) {
	svc, _, _, _ := setupTestRecruitmentService()

	_, err := svc.CreatePosting(context.Background(), &dto.CreatePostingRequest{
		Title:          "Muhasebe Uzmanı",
		Description:    "Genel muhasebe süreçlerini yürütecek uzman.",
		EmploymentType: "full_time",
		SalaryMin:      floatPtr(50000),
		SalaryMax:      floatPtr(40000),
	}, "emp-hr")
	if !errors.Is(err, ErrPostingSalaryRange) {
		t.Errorf("ErrPostingSalaryRange bekleniyordu, alınan: %v", err)
	}
}

func TestRecruitmentService_CreatePosting_DefaultsToDraft(t *testing.T) {
	svc, _, _, _ := setupTestRecruitmentService()

	resp, err := svc.CreatePosting(context.Background(), &dto.CreatePostingRequest{
		Title:          "Stajyer",
		Description:    "Yaz dönemi için stajyer alımı yapılacaktır.",
		EmploymentType: "internship",
	}, "emp-hr")
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if resp.Status != model.PostingStatusDraft {
		t.Errorf("Status = %s, beklenen draft", resp.Status)
	}

	open, total, _ := svc.ListOpenPostings(context.Background(), &dto.PaginationRequest{})
	if total != 0 || len(open) != 0 {
		t.Error("taslak ilan kariyer sayfasında görünmemeli")
	}
}

func TestRecruitmentService_Apply(t *testing.T) {
	svc, mocks, notifier, _ := setupTestRecruitmentService()
	posting := createOpenPosting(t, svc)

	managerID := "emp-manager"
	mocks.posting.postings[posting.ID].Department = &model.Department{DepartmentID: "dept-it", Name: "Bilgi Teknolojileri", ManagerID: &managerID}

	resp, err := svc.Apply(context.Background(), posting.ID, &dto.ApplyRequest{
		CandidateName: " Ali Çelik ",
		Email:         "Ali.Celik@Example.com",
	})
	if err != nil {
		t.Fatalf("başvuru hatası: %v", err)
	}
	if resp.Status != model.ApplicationStatusReceived {
		t.Errorf("Status = %s, beklenen received", resp.Status)
	}
	if resp.Email != "ali.celik@example.com" || resp.CandidateName != "Ali Çelik" {
		t.Errorf("aday bilgileri normalize edilmeli: %+v", resp)
	}
	if resp.PostingTitle != posting.Title {
		t.Errorf("PostingTitle = %q", resp.PostingTitle)
	}
	if notifier.count() != 1 {
		t.Errorf("departman yöneticisine bildirim gitmeli, gelen %d", notifier.count())
	}
}

func TestRecruitmentService_Apply_NotOpen(t *testing.T) {
	svc, mocks, _, _ := setupTestRecruitmentService()
	posting := createOpenPosting(t, svc)
	req := &dto.ApplyRequest{CandidateName: "Ali Çelik", Email: "ali@example.com"}

	yesterday := time.Now().AddDate(0, 0, -1)
	mocks.posting.postings[posting.ID].ClosesAt = &yesterday
	if _, err := svc.Apply(context.Background(), posting.ID, req); !errors.Is(err, ErrPostingNotOpen) {
		t.Errorf("süresi dolan ilan için ErrPostingNotOpen bekleniyordu, alınan: %v", err)
	}

	today := time.Now()
	mocks.posting.postings[posting.ID].ClosesAt = &today
	if _, err := svc.Apply(context.Background(), posting.ID, req); err != nil {
		t.Errorf("kapanış günü başvuru kabul edilmeli: %v", err)
	}

	mocks.posting.postings[posting.ID].Status = model.PostingStatusClosed
	if _, err := svc.Apply(context.Background(), posting.ID, req); !errors.Is(err, ErrPostingNotOpen) {
		t.Errorf("kapalı ilan için ErrPostingNotOpen bekleniyordu, alınan: %v", err)
	}

	if _, err := svc.Apply(context.Background(), "posting-yok", req); !errors.Is(err, ErrPostingNotFound) {
		t.Errorf("ErrPostingNotFound bekleniyordu, alınan: %v", err)
	}
}

func TestRecruitmentService_UpdateApplicationStatus(t *testing.T) {
	svc, _, _, mailer := setupTestRecruitmentService()
	ctx := context.Background()
	posting := createOpenPosting(t, svc)

	app, err := svc.Apply(ctx, posting.ID, &dto.ApplyRequest{CandidateName: "Ayşe Kara", Email: "ayse@example.com"})
	if err != nil {
		t.Fatalf("başvuru hatası: %v", err)
	}

	_, err = svc.UpdateApplicationStatus(ctx, app.ID, &dto.UpdateApplicationStatusRequest{Status: model.ApplicationStatusHired}, "emp-hr")
	if !errors.Is(err, ErrApplicationTransition) {
		t.Fatalf("ErrApplicationTransition bekleniyordu, alınan: %v", err)
	}

	resp, err := svc.UpdateApplicationStatus(ctx, app.ID, &dto.UpdateApplicationStatusRequest{
		Status: model.ApplicationStatusReviewing,
		Notes:  "Özgeçmiş uygun",
	}, "emp-hr")
	if err != nil {
		t.Fatalf("durum güncellenemedi: %v", err)
	}
	if resp.Status != model.ApplicationStatusReviewing || resp.Notes != "Özgeçmiş uygun" {
		t.Errorf("beklenmeyen yanıt: %+v", resp)
	}

	select {
	case m := <-mailer.sent:
		if m.to != "ayse@example.com" || !strings.Contains(m.body, "değerlendirmeye alındı") {
			t.Errorf("beklenmeyen e-posta: %+v", m)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("adaya e-posta gönderilmedi")
	}
}

func TestRecruitmentService_GetApplication_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestRecruitmentService()

	if _, err := svc.GetApplication(context.Background(), "yok"); !errors.Is(err, ErrApplicationNotFound) {
		t.Errorf("ErrApplicationNotFound bekleniyordu, alınan: %v", err)
	}
}
