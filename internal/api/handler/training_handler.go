package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/response"
)

// TrainingHandler eğitim HTTP katmanı
type TrainingHandler struct {
	trainingSvc service.TrainingService
}

// NewTrainingHandler TrainingHandler oluşturur
func NewTrainingHandler(trainingSvc service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingSvc: trainingSvc}
}

// ListTrainings GET /api/v1/trainings
func (h *TrainingHandler) ListTrainings(c *gin.Context) {
	var req dto.TrainingListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.trainingSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleTrainingError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// ListMine oturum sahibinin eğitim kayıtları
// GET /api/v1/trainings/me
func (h *TrainingHandler) ListMine(c *gin.Context) {
	employeeID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.trainingSvc.ListMine(c.Request.Context(), employeeID)
	if err != nil {
		h.handleTrainingError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetTraining GET /api/v1/trainings/:id
func (h *TrainingHandler) GetTraining(c *gin.Context) {
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	t, err := h.trainingSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTrainingError(c, err)
		return
	}
	response.OK(c, t)
}

// CreateTraining POST /api/v1/trainings
func (h *TrainingHandler) CreateTraining(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTrainingRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.trainingSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTrainingError(c, err)
		return
	}
	response.Created(c, t)
}

// UpdateTraining PUT /api/v1/trainings/:id
func (h *TrainingHandler) UpdateTraining(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTrainingRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.trainingSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleTrainingError(c, err)
		return
	}
	response.OK(c, t)
}

// DeleteTraining DELETE /api/v1/trainings/:id
func (h *TrainingHandler) DeleteTraining(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	if err := h.trainingSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleTrainingError(c, err)
		return
	}
	response.OK(c, nil)
}

// Enroll eğitime kayıt; gövde boş gönderilebilir
// POST /api/v1/trainings/:id/enroll
func (h *TrainingHandler) Enroll(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}
	var req dto.EnrollRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	enrollment, err := h.trainingSvc.Enroll(c.Request.Context(), id, &req, caller)
	if err != nil {
		h.handleTrainingError(c, err)
		return
	}
	response.Created(c, enrollment)
}

// ListEnrollments GET /api/v1/trainings/:id/enrollments
func (h *TrainingHandler) ListEnrollments(c *gin.Context) {
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	list, err := h.trainingSvc.ListEnrollments(c.Request.Context(), id)
	if err != nil {
		h.handleTrainingError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// CompleteEnrollment PUT /api/v1/trainings/:id/enrollments/:enrollment_id/complete
func (h *TrainingHandler) CompleteEnrollment(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}
	enrollmentID, ok := mustParam(c, "enrollment_id")
	if !ok {
		return
	}
	var req dto.CompleteEnrollmentRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	enrollment, err := h.trainingSvc.CompleteEnrollment(c.Request.Context(), id, enrollmentID, &req, callerID)
	if err != nil {
		h.handleTrainingError(c, err)
		return
	}
	response.OK(c, enrollment)
}

// CancelEnrollment DELETE /api/v1/trainings/:id/enrollments/:enrollment_id
func (h *TrainingHandler) CancelEnrollment(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}
	enrollmentID, ok := mustParam(c, "enrollment_id")
	if !ok {
		return
	}

	if err := h.trainingSvc.CancelEnrollment(c.Request.Context(), id, enrollmentID, caller); err != nil {
		h.handleTrainingError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *TrainingHandler) handleTrainingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTrainingNotFound):
		response.NotFound(c, 18001, err.Error())
	case errors.Is(err, service.ErrTrainingClosed):
		response.Conflict(c, 18002, err.Error())
	case errors.Is(err, service.ErrTrainingFull):
		response.Conflict(c, 18003, err.Error())
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Conflict(c, 18004, err.Error())
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.NotFound(c, 18005, err.Error())
	case errors.Is(err, service.ErrEnrollmentNotActive):
		response.Conflict(c, 18006, err.Error())
	case errors.Is(err, service.ErrTrainingHasEnrollees):
		response.Conflict(c, 18007, err.Error())
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 14001, err.Error())
	default:
		handleCommonError(c, err)
	}
}
