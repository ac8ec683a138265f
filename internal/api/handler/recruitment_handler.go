package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/response"
)

// RecruitmentHandler iş ilanı ve başvuru HTTP katmanı
type RecruitmentHandler struct {
	recruitmentSvc service.RecruitmentService
}

// NewRecruitmentHandler RecruitmentHandler oluşturur
func NewRecruitmentHandler(recruitmentSvc service.RecruitmentService) *RecruitmentHandler {
	return &RecruitmentHandler{recruitmentSvc: recruitmentSvc}
}

// ────────────────────── İlanlar (İK) ──────────────────────

// ListPostings GET /api/v1/job-postings
func (h *RecruitmentHandler) ListPostings(c *gin.Context) {
	var req dto.PostingListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.recruitmentSvc.ListPostings(c.Request.Context(), &req)
	if err != nil {
		h.handleRecruitmentError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetPosting GET /api/v1/job-postings/:id
func (h *RecruitmentHandler) GetPosting(c *gin.Context) {
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	posting, err := h.recruitmentSvc.GetPosting(c.Request.Context(), id)
	if err != nil {
		h.handleRecruitmentError(c, err)
		return
	}
	response.OK(c, posting)
}

// CreatePosting POST /api/v1/job-postings
func (h *RecruitmentHandler) CreatePosting(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePostingRequest
	if !bindJSON(c, &req) {
		return
	}

	posting, err := h.recruitmentSvc.CreatePosting(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleRecruitmentError(c, err)
		return
	}
	response.Created(c, posting)
}

// UpdatePosting PUT /api/v1/job-postings/:id
func (h *RecruitmentHandler) UpdatePosting(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePostingRequest
	if !bindJSON(c, &req) {
		return
	}

	posting, err := h.recruitmentSvc.UpdatePosting(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleRecruitmentError(c, err)
		return
	}
	response.OK(c, posting)
}

// DeletePosting DELETE /api/v1/job-postings/:id
func (h *RecruitmentHandler) DeletePosting(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	if err := h.recruitmentSvc.DeletePosting(c.Request.Context(), id, callerID); err != nil {
		h.handleRecruitmentError(c, err)
		return
	}
	response.OK(c, nil)
}

// ────────────────────── Kariyer sayfası (herkese açık) ──────────────────────

// ListOpenPostings GET /api/v1/careers
func (h *RecruitmentHandler) ListOpenPostings(c *gin.Context) {
	var req dto.PaginationRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.recruitmentSvc.ListOpenPostings(c.Request.Context(), &req)
	if err != nil {
		h.handleRecruitmentError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Apply POST /api/v1/careers/:posting_id/apply
func (h *RecruitmentHandler) Apply(c *gin.Context) {
	postingID, ok := mustParam(c, "posting_id")
	if !ok {
		return
	}
	var req dto.ApplyRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.recruitmentSvc.Apply(c.Request.Context(), postingID, &req)
	if err != nil {
		h.handleRecruitmentError(c, err)
		return
	}
	response.Created(c, app)
}

// ────────────────────── Başvurular (İK) ──────────────────────

// ListApplications GET /api/v1/applications
func (h *RecruitmentHandler) ListApplications(c *gin.Context) {
	var req dto.ApplicationListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.recruitmentSvc.ListApplications(c.Request.Context(), &req)
	if err != nil {
		h.handleRecruitmentError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetApplication GET /api/v1/applications/:id
func (h *RecruitmentHandler) GetApplication(c *gin.Context) {
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	app, err := h.recruitmentSvc.GetApplication(c.Request.Context(), id)
	if err != nil {
		h.handleRecruitmentError(c, err)
		return
	}
	response.OK(c, app)
}

// UpdateApplicationStatus PUT /api/v1/applications/:id/status
func (h *RecruitmentHandler) UpdateApplicationStatus(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.recruitmentSvc.UpdateApplicationStatus(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleRecruitmentError(c, err)
		return
	}
	response.OK(c, app)
}

func (h *RecruitmentHandler) handleRecruitmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostingNotFound):
		response.NotFound(c, 22001, err.Error())
	case errors.Is(err, service.ErrPostingNotOpen):
		response.Conflict(c, 22002, err.Error())
	case errors.Is(err, service.ErrPostingSalaryRange):
		response.BadRequest(c, 22003, err.Error())
	case errors.Is(err, service.ErrApplicationNotFound):
		response.NotFound(c, 22004, err.Error())
	case errors.Is(err, service.ErrApplicationTransition):
		response.Conflict(c, 22005, err.Error())
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.BadRequest(c, 13001, err.Error())
	default:
		handleCommonError(c, err)
	}
}
