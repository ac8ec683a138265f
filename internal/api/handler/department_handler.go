package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/response"
)

// DepartmentHandler departman HTTP katmanı
type DepartmentHandler struct {
	deptSvc service.DepartmentService
}

// NewDepartmentHandler DepartmentHandler oluşturur
func NewDepartmentHandler(deptSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc}
}

// ListDepartments departman listesi
// GET /api/v1/departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	var req dto.DepartmentListRequest
	if !bindQuery(c, &req) {
		return
	}

	depts, err := h.deptSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": depts})
}

// GetDepartment departman ayrıntısı
// GET /api/v1/departments/:id
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	dept, err := h.deptSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, dept)
}

// CreateDepartment departman oluşturur
// POST /api/v1/departments
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	dept, err := h.deptSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.Created(c, dept)
}

// UpdateDepartment departman günceller
// PUT /api/v1/departments/:id
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	dept, err := h.deptSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, dept)
}

// DeleteDepartment departman siler
// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	if err := h.deptSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetMembers departman çalışanları
// GET /api/v1/departments/:id/members
func (h *DepartmentHandler) GetMembers(c *gin.Context) {
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	members, err := h.deptSvc.GetMembers(c.Request.Context(), id)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": members})
}

func (h *DepartmentHandler) handleDepartmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 13001, err.Error())
	case errors.Is(err, service.ErrDepartmentNameExists):
		response.Conflict(c, 13002, err.Error())
	case errors.Is(err, service.ErrDepartmentHasMembers):
		response.Conflict(c, 13003, err.Error())
	case errors.Is(err, service.ErrDepartmentInactive):
		response.BadRequest(c, 13004, err.Error())
	case errors.Is(err, service.ErrManagerNotFound):
		response.BadRequest(c, 13005, err.Error())
	case errors.Is(err, service.ErrCompanyNotFound):
		response.BadRequest(c, 12001, err.Error())
	default:
		handleCommonError(c, err)
	}
}
