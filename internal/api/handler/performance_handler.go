package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/response"
)

// PerformanceHandler performans değerlendirme HTTP katmanı
type PerformanceHandler struct {
	perfSvc service.PerformanceService
}

// NewPerformanceHandler PerformanceHandler oluşturur
func NewPerformanceHandler(perfSvc service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{perfSvc: perfSvc}
}

// ListReviews GET /api/v1/performance
func (h *PerformanceHandler) ListReviews(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.ReviewListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.perfSvc.List(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetReview GET /api/v1/performance/:id
func (h *PerformanceHandler) GetReview(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	review, err := h.perfSvc.GetByID(c.Request.Context(), id, caller)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.OK(c, review)
}

// CreateReview POST /api/v1/performance
func (h *PerformanceHandler) CreateReview(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.perfSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.Created(c, review)
}

// UpdateReview PUT /api/v1/performance/:id
func (h *PerformanceHandler) UpdateReview(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.perfSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.OK(c, review)
}

// SubmitReview PUT /api/v1/performance/:id/submit
func (h *PerformanceHandler) SubmitReview(c *gin.Context) {
	h.transition(c, h.perfSvc.Submit)
}

// FinalizeReview PUT /api/v1/performance/:id/finalize
func (h *PerformanceHandler) FinalizeReview(c *gin.Context) {
	h.transition(c, h.perfSvc.Finalize)
}

func (h *PerformanceHandler) transition(c *gin.Context, fn func(ctx context.Context, id, callerID string) (*dto.ReviewResponse, error)) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	review, err := fn(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.OK(c, review)
}

// DeleteReview DELETE /api/v1/performance/:id
func (h *PerformanceHandler) DeleteReview(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	if err := h.perfSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.OK(c, nil)
}

// Summary departman bazında ortalama puanlar
// GET /api/v1/performance/summary
func (h *PerformanceHandler) Summary(c *gin.Context) {
	summary, err := h.perfSvc.Summary(c.Request.Context())
	if err != nil {
		h.handleReviewError(c, err)
		return
	}
	response.OK(c, summary)
}

func (h *PerformanceHandler) handleReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReviewNotFound):
		response.NotFound(c, 17001, err.Error())
	case errors.Is(err, service.ErrReviewFinalized):
		response.Conflict(c, 17002, err.Error())
	case errors.Is(err, service.ErrReviewNotDraft):
		response.Conflict(c, 17003, err.Error())
	case errors.Is(err, service.ErrReviewNotSubmit):
		response.Conflict(c, 17004, err.Error())
	case errors.Is(err, service.ErrReviewSelf):
		response.Forbidden(c, 17005, err.Error())
	case errors.Is(err, service.ErrReviewScoreBounds):
		response.BadRequest(c, 17006, err.Error())
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 14001, err.Error())
	default:
		handleCommonError(c, err)
	}
}
