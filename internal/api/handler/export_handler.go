package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/response"
)

// ExportHandler dışa aktarma HTTP katmanı
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler ExportHandler oluşturur
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportEmployees çalışan listesini indirir
// GET /api/v1/employees/export?format=xlsx|csv
func (h *ExportHandler) ExportEmployees(c *gin.Context) {
	var req dto.ExportRequest
	if !bindQuery(c, &req) {
		return
	}
	format := req.Format
	if format == "" {
		format = "xlsx"
	}

	file, err := h.exportSvc.ExportEmployees(c.Request.Context(), format)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	writeAttachment(c, file)
}

// ExportPayroll dönem bordrosunu xlsx olarak indirir
// GET /api/v1/payrolls/export?year=&month=
func (h *ExportHandler) ExportPayroll(c *gin.Context) {
	var req dto.PayrollPeriodRequest
	if !bindQuery(c, &req) {
		return
	}

	file, err := h.exportSvc.ExportPayroll(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	writeAttachment(c, file)
}

func writeAttachment(c *gin.Context, file *service.ExportFile) {
	encodedFilename := url.PathEscape(file.Filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, file.ContentType, file.Buffer.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportUnsupported):
		response.BadRequest(c, 24001, err.Error())
	case errors.Is(err, service.ErrExportNoPayrolls):
		response.NotFound(c, 24002, err.Error())
	case errors.Is(err, service.ErrPayrollPeriodInvalid):
		response.BadRequest(c, 16004, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		handleCommonError(c, err)
	}
}
