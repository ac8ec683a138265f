package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/response"
)

// DashboardHandler rol bazlı özet panelleri
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler DashboardHandler oluşturur
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Admin GET /api/v1/dashboard/admin
func (h *DashboardHandler) Admin(c *gin.Context) {
	resp, err := h.dashboardSvc.Admin(c.Request.Context())
	if err != nil {
		handleCommonError(c, err)
		return
	}
	response.OK(c, resp)
}

// HR GET /api/v1/dashboard/hr
func (h *DashboardHandler) HR(c *gin.Context) {
	resp, err := h.dashboardSvc.HR(c.Request.Context())
	if err != nil {
		handleCommonError(c, err)
		return
	}
	response.OK(c, resp)
}

// Employee oturum sahibinin paneli
// GET /api/v1/dashboard/employee
func (h *DashboardHandler) Employee(c *gin.Context) {
	employeeID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.dashboardSvc.Employee(c.Request.Context(), employeeID)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			response.NotFound(c, 14001, err.Error())
			return
		}
		handleCommonError(c, err)
		return
	}
	response.OK(c, resp)
}
