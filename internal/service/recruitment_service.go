package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/model"
	"hr-intelligence/backend/internal/repository"
	"hr-intelligence/backend/pkg/email"
)

// ── İşe alım modülü iş hataları ──

var (
	ErrPostingNotFound       = errors.New("iş ilanı bulunamadı")
	ErrPostingNotOpen        = errors.New("bu ilan başvuruya açık değil")
	ErrPostingSalaryRange    = errors.New("en düşük maaş en yüksek maaştan büyük olamaz")
	ErrApplicationNotFound   = errors.New("başvuru bulunamadı")
	ErrApplicationTransition = errors.New("başvuru bu duruma geçirilemez")
)

// applicationTransitions izin verilen başvuru durum geçişleri.
// hired ve rejected son durumlardır.
var applicationTransitions = map[string][]string{
	model.ApplicationStatusReceived:  {model.ApplicationStatusReviewing, model.ApplicationStatusRejected},
	model.ApplicationStatusReviewing: {model.ApplicationStatusInterview, model.ApplicationStatusRejected},
	model.ApplicationStatusInterview: {model.ApplicationStatusOffered, model.ApplicationStatusRejected},
	model.ApplicationStatusOffered:   {model.ApplicationStatusHired, model.ApplicationStatusRejected},
}

// CanTransitionApplication başvurunun from durumundan to durumuna geçip geçemeyeceği
func CanTransitionApplication(from, to string) bool {
	for _, next := range applicationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

var applicationStatusLabels = map[string]string{
	model.ApplicationStatusReviewing: "değerlendirmeye alındı",
	model.ApplicationStatusInterview: "mülakat aşamasına geçti",
	model.ApplicationStatusOffered:   "teklif aşamasına geçti",
	model.ApplicationStatusHired:     "olumlu sonuçlandı",
	model.ApplicationStatusRejected:  "olumsuz sonuçlandı",
}

// RecruitmentService iş ilanı ve başvuru iş arayüzü
type RecruitmentService interface {
	CreatePosting(ctx context.Context, req *dto.CreatePostingRequest, callerID string) (*dto.PostingResponse, error)
	GetPosting(ctx context.Context, id string) (*dto.PostingResponse, error)
	ListPostings(ctx context.Context, req *dto.PostingListRequest) ([]dto.PostingResponse, int64, error)
	UpdatePosting(ctx context.Context, id string, req *dto.UpdatePostingRequest, callerID string) (*dto.PostingResponse, error)
	DeletePosting(ctx context.Context, id string, callerID string) error

	// Kariyer sayfası (kimlik doğrulamasız)
	ListOpenPostings(ctx context.Context, page *dto.PaginationRequest) ([]dto.PostingResponse, int64, error)
	Apply(ctx context.Context, postingID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)

	GetApplication(ctx context.Context, id string) (*dto.ApplicationResponse, error)
	ListApplications(ctx context.Context, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, int64, error)
	UpdateApplicationStatus(ctx context.Context, id string, req *dto.UpdateApplicationStatusRequest, callerID string) (*dto.ApplicationResponse, error)
}

type recruitmentService struct {
	repo     *repository.Repository
	notifier Notifier
	mailer   email.Sender
	logger   *zap.Logger
}

// NewRecruitmentService RecruitmentService örneği oluşturur
func NewRecruitmentService(repo *repository.Repository, notifier Notifier, mailer email.Sender, logger *zap.Logger) RecruitmentService {
	if mailer == nil {
		mailer = email.NopSender{}
	}
	return &recruitmentService{repo: repo, notifier: notifier, mailer: mailer, logger: logger}
}

// ────────────────────── İlanlar ──────────────────────

func (s *recruitmentService) CreatePosting(ctx context.Context, req *dto.CreatePostingRequest, callerID string) (*dto.PostingResponse, error) {
	if err := checkSalaryRange(req.SalaryMin, req.SalaryMax); err != nil {
		return nil, err
	}
	closesAt, err := parseOptionalDate(req.ClosesAt)
	if err != nil {
		return nil, err
	}
	dept, err := s.resolveDepartment(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.PostingStatusDraft
	}

	posting := &model.JobPosting{
		DepartmentID:   req.DepartmentID,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Requirements:   req.Requirements,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Status:         status,
		ClosesAt:       closesAt,
	}
	posting.Audit(callerID)

	if err := s.repo.JobPosting.Create(ctx, posting); err != nil {
		s.logger.Error("ilan oluşturulamadı", zap.Error(err))
		return nil, err
	}
	posting.Department = dept

	resp := toPostingResponse(posting)
	return &resp, nil
}

func (s *recruitmentService) GetPosting(ctx context.Context, id string) (*dto.PostingResponse, error) {
	posting, err := s.getPosting(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPostingResponse(posting)
	return &resp, nil
}

func (s *recruitmentService) ListPostings(ctx context.Context, req *dto.PostingListRequest) ([]dto.PostingResponse, int64, error) {
	return s.listPostings(ctx, repository.PostingFilter{
		Status:       req.Status,
		DepartmentID: req.DepartmentID,
		Offset:       req.GetOffset(),
		Limit:        req.GetPageSize(),
	})
}

func (s *recruitmentService) ListOpenPostings(ctx context.Context, page *dto.PaginationRequest) ([]dto.PostingResponse, int64, error) {
	return s.listPostings(ctx, repository.PostingFilter{
		Status: model.PostingStatusOpen,
		Offset: page.GetOffset(),
		Limit:  page.GetPageSize(),
	})
}

func (s *recruitmentService) listPostings(ctx context.Context, filter repository.PostingFilter) ([]dto.PostingResponse, int64, error) {
	postings, total, err := s.repo.JobPosting.List(ctx, filter)
	if err != nil {
		s.logger.Error("ilanlar listelenemedi", zap.Error(err))
		return nil, 0, err
	}
	list := make([]dto.PostingResponse, 0, len(postings))
	for i := range postings {
		list = append(list, toPostingResponse(&postings[i]))
	}
	return list, total, nil
}

func (s *recruitmentService) UpdatePosting(ctx context.Context, id string, req *dto.UpdatePostingRequest, callerID string) (*dto.PostingResponse, error) {
	posting, err := s.getPosting(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DepartmentID != nil {
		dept, err := s.resolveDepartment(ctx, req.DepartmentID)
		if err != nil {
			return nil, err
		}
		posting.DepartmentID = req.DepartmentID
		posting.Department = dept
	}
	if req.Title != nil {
		posting.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		posting.Description = *req.Description
	}
	if req.Requirements != nil {
		posting.Requirements = *req.Requirements
	}
	if req.Location != nil {
		posting.Location = *req.Location
	}
	if req.EmploymentType != nil {
		posting.EmploymentType = *req.EmploymentType
	}
	if req.SalaryMin != nil {
		posting.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		posting.SalaryMax = req.SalaryMax
	}
	if err := checkSalaryRange(posting.SalaryMin, posting.SalaryMax); err != nil {
		return nil, err
	}
	if req.Status != nil {
		posting.Status = *req.Status
	}
	if req.ClosesAt != nil {
		if posting.ClosesAt, err = parseOptionalDate(req.ClosesAt); err != nil {
			return nil, err
		}
	}
	posting.Audit(callerID)

	if err := s.repo.JobPosting.Update(ctx, posting); err != nil {
		s.logger.Error("ilan güncellenemedi", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toPostingResponse(posting)
	return &resp, nil
}

func (s *recruitmentService) DeletePosting(ctx context.Context, id string, callerID string) error {
	if _, err := s.getPosting(ctx, id); err != nil {
		return err
	}
	if err := s.repo.JobPosting.Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostingNotFound
		}
		s.logger.Error("ilan silinemedi", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Apply ──────────────────────

// Apply yalnızca açık ve süresi dolmamış ilanlara başvuru kabul eder
func (s *recruitmentService) Apply(ctx context.Context, postingID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	posting, err := s.getPosting(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if posting.Status != model.PostingStatusOpen {
		return nil, ErrPostingNotOpen
	}
	if posting.ClosesAt != nil && truncateDay(time.Now()).After(truncateDay(*posting.ClosesAt)) {
		return nil, ErrPostingNotOpen
	}

	app := &model.JobApplication{
		JobPostingID:  postingID,
		CandidateName: strings.TrimSpace(req.CandidateName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         req.Phone,
		ResumeURL:     req.ResumeURL,
		CoverLetter:   req.CoverLetter,
		Status:        model.ApplicationStatusReceived,
	}
	if err := s.repo.JobApplication.Create(ctx, app); err != nil {
		s.logger.Error("başvuru kaydedilemedi", zap.Error(err))
		return nil, err
	}
	app.JobPosting = posting

	if posting.Department != nil && posting.Department.ManagerID != nil {
		s.notifier.Notify(ctx, Notice{
			EmployeeID:  *posting.Department.ManagerID,
			Type:        model.NotificationApplicationUpdate,
			Title:       "Yeni iş başvurusu",
			Content:     fmt.Sprintf("%s, \"%s\" ilanına başvurdu.", app.CandidateName, posting.Title),
			RelatedType: "job_application",
			RelatedID:   app.ApplicationID,
		})
	}

	resp := toApplicationResponse(app)
	return &resp, nil
}

// ────────────────────── Başvurular ──────────────────────

func (s *recruitmentService) GetApplication(ctx context.Context, id string) (*dto.ApplicationResponse, error) {
	app, err := s.getApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toApplicationResponse(app)
	return &resp, nil
}

func (s *recruitmentService) ListApplications(ctx context.Context, req *dto.ApplicationListRequest) ([]dto.ApplicationResponse, int64, error) {
	apps, total, err := s.repo.JobApplication.List(ctx, repository.ApplicationFilter{
		JobPostingID: req.JobPostingID,
		Status:       req.Status,
		Offset:       req.GetOffset(),
		Limit:        req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("başvurular listelenemedi", zap.Error(err))
		return nil, 0, err
	}
	list := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		list = append(list, toApplicationResponse(&apps[i]))
	}
	return list, total, nil
}

// UpdateApplicationStatus durum geçişini doğrular ve adaya e-posta gönderir
func (s *recruitmentService) UpdateApplicationStatus(ctx context.Context, id string, req *dto.UpdateApplicationStatusRequest, callerID string) (*dto.ApplicationResponse, error) {
	app, err := s.getApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransitionApplication(app.Status, req.Status) {
		return nil, fmt.Errorf("%w: %s → %s", ErrApplicationTransition, app.Status, req.Status)
	}

	app.Status = req.Status
	if req.Notes != "" {
		app.Notes = req.Notes
	}
	app.Audit(callerID)

	if err := s.repo.JobApplication.Update(ctx, app); err != nil {
		s.logger.Error("başvuru güncellenemedi", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.mailCandidate(ctx, app)

	resp := toApplicationResponse(app)
	return &resp, nil
}

// ── İç yardımcılar ──

func (s *recruitmentService) mailCandidate(ctx context.Context, app *model.JobApplication) {
	label, ok := applicationStatusLabels[app.Status]
	if !ok {
		return
	}
	if _, nop := s.mailer.(email.NopSender); nop {
		return
	}

	title := ""
	if app.JobPosting != nil {
		title = app.JobPosting.Title
	}
	subject := "Başvurunuz hakkında"
	body := fmt.Sprintf("Sayın %s,\n\n\"%s\" pozisyonuna yaptığınız başvuru %s.", app.CandidateName, title, label)

	go func(to string) {
		mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mailTimeout)
		defer cancel()
		if err := s.mailer.Send(mailCtx, to, subject, body); err != nil {
			s.logger.Warn("aday e-postası gönderilemedi", zap.String("application_id", app.ApplicationID), zap.Error(err))
		}
	}(app.Email)
}

func (s *recruitmentService) getPosting(ctx context.Context, id string) (*model.JobPosting, error) {
	posting, err := s.repo.JobPosting.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostingNotFound
		}
		s.logger.Error("ilan sorgulanamadı", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return posting, nil
}

func (s *recruitmentService) getApplication(ctx context.Context, id string) (*model.JobApplication, error) {
	app, err := s.repo.JobApplication.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("başvuru sorgulanamadı", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return app, nil
}

func (s *recruitmentService) resolveDepartment(ctx context.Context, id *string) (*model.Department, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	dept, err := s.repo.Department.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return dept, nil
}

func checkSalaryRange(min, max *float64) error {
	if min != nil && max != nil && *min > *max {
		return ErrPostingSalaryRange
	}
	return nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toPostingResponse(p *model.JobPosting) dto.PostingResponse {
	resp := dto.PostingResponse{
		ID:             p.JobPostingID,
		Department:     departmentRef(p.Department),
		Title:          p.Title,
		Description:    p.Description,
		Requirements:   p.Requirements,
		Location:       p.Location,
		EmploymentType: p.EmploymentType,
		SalaryMin:      p.SalaryMin,
		SalaryMax:      p.SalaryMax,
		Status:         p.Status,
		CreatedAt:      formatTime(p.CreatedAt),
	}
	if p.ClosesAt != nil {
		resp.ClosesAt = formatDate(*p.ClosesAt)
	}
	return resp
}

func toApplicationResponse(a *model.JobApplication) dto.ApplicationResponse {
	resp := dto.ApplicationResponse{
		ID:            a.ApplicationID,
		JobPostingID:  a.JobPostingID,
		CandidateName: a.CandidateName,
		Email:         a.Email,
		Phone:         a.Phone,
		ResumeURL:     a.ResumeURL,
		CoverLetter:   a.CoverLetter,
		Status:        a.Status,
		Notes:         a.Notes,
		CreatedAt:     formatTime(a.CreatedAt),
	}
	if a.JobPosting != nil {
		resp.PostingTitle = a.JobPosting.Title
	}
	return resp
}
