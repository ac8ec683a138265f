package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/importer"
	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/response"
)

// EmployeeHandler çalışan HTTP katmanı
type EmployeeHandler struct {
	employeeSvc service.EmployeeService
}

// NewEmployeeHandler EmployeeHandler oluşturur
func NewEmployeeHandler(employeeSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc}
}

// ListEmployees çalışan listesi (sayfalı)
// GET /api/v1/employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.EmployeeListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.employeeSvc.List(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetEmployee çalışan ayrıntısı
// GET /api/v1/employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	emp, err := h.employeeSvc.GetByID(c.Request.Context(), id, caller)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, emp)
}

// CreateEmployee çalışan ekler, geçici şifre yanıtta bir kez döner
// POST /api/v1/employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.employeeSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.Created(c, resp)
}

// UpdateEmployee çalışan günceller
// PUT /api/v1/employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	emp, err := h.employeeSvc.Update(c.Request.Context(), id, &req, caller)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, emp)
}

// DeleteEmployee çalışanı siler
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	if err := h.employeeSvc.Delete(c.Request.Context(), id, caller); err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, nil)
}

// ResetPassword geçici şifre üretir
// POST /api/v1/employees/:id/reset-password
func (h *EmployeeHandler) ResetPassword(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.employeeSvc.ResetPassword(c.Request.Context(), id, caller)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, resp)
}

// ImportEmployees xlsx/xls/csv dosyasından toplu ekleme
// POST /api/v1/employees/import (multipart: file, dry_run)
func (h *EmployeeHandler) ImportEmployees(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.ImportEmployeeRequest
	if !bindForm(c, &req) {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "file alanı zorunludur")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, 14007, "yüklenen dosya açılamadı")
		return
	}
	defer f.Close()

	resp, err := h.employeeSvc.Import(c.Request.Context(), fh.Filename, f, req.DryRun, caller)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 14001, err.Error())
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, 14002, err.Error())
	case errors.Is(err, service.ErrNationalIDExists):
		response.Conflict(c, 14003, err.Error())
	case errors.Is(err, service.ErrCannotDeleteSelf):
		response.BadRequest(c, 14004, err.Error())
	case errors.Is(err, service.ErrSelfUpdateLimited):
		response.Forbidden(c, 14005, err.Error())
	case errors.Is(err, service.ErrRoleChangeNotAllow):
		response.Forbidden(c, 14006, err.Error())
	case errors.Is(err, importer.ErrUnsupportedFormat),
		errors.Is(err, importer.ErrEmptyFile),
		errors.Is(err, importer.ErrMissingColumns),
		errors.Is(err, importer.ErrTooManyRows),
		errors.Is(err, importer.ErrNoDataRows):
		response.BadRequest(c, 14007, err.Error())
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.BadRequest(c, 13001, err.Error())
	case errors.Is(err, service.ErrCompanyNotFound):
		response.BadRequest(c, 12001, err.Error())
	default:
		handleCommonError(c, err)
	}
}
