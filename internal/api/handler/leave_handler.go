package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/response"
)

// LeaveHandler izin HTTP katmanı
type LeaveHandler struct {
	leaveSvc service.LeaveService
}

// NewLeaveHandler LeaveHandler oluşturur
func NewLeaveHandler(leaveSvc service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveSvc: leaveSvc}
}

// ListLeaves GET /api/v1/leaves
func (h *LeaveHandler) ListLeaves(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.LeaveListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.leaveSvc.List(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// ListPending onay bekleyen talepler
// GET /api/v1/leaves/pending
func (h *LeaveHandler) ListPending(c *gin.Context) {
	list, err := h.leaveSvc.ListPending(c.Request.Context())
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetLeave GET /api/v1/leaves/:id
func (h *LeaveHandler) GetLeave(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	leave, err := h.leaveSvc.GetByID(c.Request.Context(), id, caller)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}
	response.OK(c, leave)
}

// CreateLeave izin talebi oluşturur
// POST /api/v1/leaves
func (h *LeaveHandler) CreateLeave(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.CreateLeaveRequest
	if !bindJSON(c, &req) {
		return
	}

	leave, err := h.leaveSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}
	response.Created(c, leave)
}

// ApproveLeave PUT /api/v1/leaves/:id/approve
func (h *LeaveHandler) ApproveLeave(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	leave, err := h.leaveSvc.Approve(c.Request.Context(), id, caller)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}
	response.OK(c, leave)
}

// RejectLeave PUT /api/v1/leaves/:id/reject
func (h *LeaveHandler) RejectLeave(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}
	var req dto.RejectLeaveRequest
	if !bindJSON(c, &req) {
		return
	}

	leave, err := h.leaveSvc.Reject(c.Request.Context(), id, req.Reason, caller)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}
	response.OK(c, leave)
}

// CancelLeave PUT /api/v1/leaves/:id/cancel
func (h *LeaveHandler) CancelLeave(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	leave, err := h.leaveSvc.Cancel(c.Request.Context(), id, caller)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}
	response.OK(c, leave)
}

// Balance yıllık izin bakiyesi. employee_id verilmezse oturum sahibi;
// başkasının bakiyesini yalnızca İK görebilir.
// GET /api/v1/leaves/balance?employee_id=&year=
func (h *LeaveHandler) Balance(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	employeeID := c.Query("employee_id")
	if employeeID == "" {
		employeeID = caller.EmployeeID
	}
	if employeeID != caller.EmployeeID && !caller.IsHR() {
		response.Forbidden(c, 10003, service.ErrNoPermission.Error())
		return
	}

	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 2000 || y > 2100 {
			response.BadRequest(c, 10001, "year 2000 ile 2100 arasında olmalıdır")
			return
		}
		year = y
	}

	balance, err := h.leaveSvc.Balance(c.Request.Context(), employeeID, year)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}
	response.OK(c, balance)
}

func (h *LeaveHandler) handleLeaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLeaveNotFound):
		response.NotFound(c, 15001, err.Error())
	case errors.Is(err, service.ErrLeaveNoBusinessDays):
		response.BadRequest(c, 15002, err.Error())
	case errors.Is(err, service.ErrLeaveOverlap):
		response.Conflict(c, 15003, err.Error())
	case errors.Is(err, service.ErrLeaveBalanceExceeded):
		response.BadRequest(c, 15004, err.Error())
	case errors.Is(err, service.ErrLeaveNotPending):
		response.Conflict(c, 15005, err.Error())
	case errors.Is(err, service.ErrLeaveSelfApproval):
		response.Forbidden(c, 15006, err.Error())
	case errors.Is(err, service.ErrLeaveRejectNeedReason):
		response.BadRequest(c, 15007, err.Error())
	case errors.Is(err, service.ErrLeaveCrossesYear):
		response.BadRequest(c, 15008, err.Error())
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 14001, err.Error())
	default:
		handleCommonError(c, err)
	}
}
