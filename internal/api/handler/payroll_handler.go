package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/response"
)

// PayrollHandler bordro HTTP katmanı
type PayrollHandler struct {
	payrollSvc service.PayrollService
}

// NewPayrollHandler PayrollHandler oluşturur
func NewPayrollHandler(payrollSvc service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollSvc: payrollSvc}
}

// GeneratePayroll dönem bordrolarını taslak olarak üretir
// POST /api/v1/payrolls/generate
func (h *PayrollHandler) GeneratePayroll(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.GeneratePayrollRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.payrollSvc.Generate(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.Created(c, resp)
}

// ListPayrolls GET /api/v1/payrolls
func (h *PayrollHandler) ListPayrolls(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.PayrollListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.payrollSvc.List(c.Request.Context(), &req, caller)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// ListMine oturum sahibinin bordroları
// GET /api/v1/payrolls/me
func (h *PayrollHandler) ListMine(c *gin.Context) {
	employeeID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.PayrollListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.payrollSvc.ListOwn(c.Request.Context(), employeeID, &req)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetPayroll GET /api/v1/payrolls/:id
func (h *PayrollHandler) GetPayroll(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	p, err := h.payrollSvc.GetByID(c.Request.Context(), id, caller)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OK(c, p)
}

// UpdatePayroll taslak bordroda prim/kesinti düzeltmesi
// PUT /api/v1/payrolls/:id
func (h *PayrollHandler) UpdatePayroll(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePayrollRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.payrollSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OK(c, p)
}

// ApprovePayroll PUT /api/v1/payrolls/:id/approve
func (h *PayrollHandler) ApprovePayroll(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	p, err := h.payrollSvc.Approve(c.Request.Context(), id, callerID)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OK(c, p)
}

// PayPayroll PUT /api/v1/payrolls/:id/pay
func (h *PayrollHandler) PayPayroll(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	p, err := h.payrollSvc.Pay(c.Request.Context(), id, callerID)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OK(c, p)
}

// Summary dönem toplamları
// GET /api/v1/payrolls/summary?year=&month=
func (h *PayrollHandler) Summary(c *gin.Context) {
	var req dto.PayrollPeriodRequest
	if !bindQuery(c, &req) {
		return
	}

	summary, err := h.payrollSvc.Summary(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		h.handlePayrollError(c, err)
		return
	}
	response.OK(c, summary)
}

func (h *PayrollHandler) handlePayrollError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPayrollNotFound):
		response.NotFound(c, 16001, err.Error())
	case errors.Is(err, service.ErrPayrollNotDraft):
		response.Conflict(c, 16002, err.Error())
	case errors.Is(err, service.ErrPayrollNotApproved):
		response.Conflict(c, 16003, err.Error())
	case errors.Is(err, service.ErrPayrollPeriodInvalid):
		response.BadRequest(c, 16004, err.Error())
	case errors.Is(err, service.ErrPayrollConcurrent):
		response.Conflict(c, 16005, err.Error())
	default:
		handleCommonError(c, err)
	}
}
