package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/response"
)

// CompanyHandler şirket HTTP katmanı
type CompanyHandler struct {
	companySvc service.CompanyService
}

// NewCompanyHandler CompanyHandler oluşturur
func NewCompanyHandler(companySvc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companySvc: companySvc}
}

// ListCompanies GET /api/v1/companies
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	list, err := h.companySvc.List(c.Request.Context())
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// GetCompany GET /api/v1/companies/:id
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}
	company, err := h.companySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}
	response.OK(c, company)
}

// CreateCompany POST /api/v1/companies
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.companySvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}
	response.Created(c, company)
}

// UpdateCompany PUT /api/v1/companies/:id
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.companySvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}
	response.OK(c, company)
}

// DeleteCompany DELETE /api/v1/companies/:id
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	if err := h.companySvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleCompanyError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *CompanyHandler) handleCompanyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, service.ErrCompanyNameExists):
		response.Conflict(c, 12002, err.Error())
	case errors.Is(err, service.ErrCompanyHasDepartments):
		response.Conflict(c, 12003, err.Error())
	default:
		handleCommonError(c, err)
	}
}
