package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/response"
)

// DocumentHandler belge HTTP katmanı
type DocumentHandler struct {
	documentSvc service.DocumentService
}

// NewDocumentHandler DocumentHandler oluşturur
func NewDocumentHandler(documentSvc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentSvc: documentSvc}
}

// UploadDocument POST /api/v1/documents (multipart: file, title, category, employee_id)
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.UploadDocumentRequest
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
		response.BadRequest(c, 21005, "yüklenen dosya açılamadı")
		return
	}
	defer f.Close()

	doc, err := h.documentSvc.Upload(c.Request.Context(), &req, service.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}, caller)
	if err != nil {
		h.handleDocumentError(c, err)
		return
	}
	response.Created(c, doc)
}

// ListDocuments GET /api/v1/documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	var req dto.DocumentListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.documentSvc.List(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleDocumentError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetDocument GET /api/v1/documents/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentSvc.GetByID(c.Request.Context(), id, caller)
	if err != nil {
		h.handleDocumentError(c, err)
		return
	}
	response.OK(c, doc)
}

// DownloadDocument GET /api/v1/documents/:id/download
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	doc, path, err := h.documentSvc.Open(c.Request.Context(), id, caller)
	if err != nil {
		h.handleDocumentError(c, err)
		return
	}
	c.Header("Content-Type", doc.MimeType)
	c.FileAttachment(path, doc.FileName)
}

// DeleteDocument DELETE /api/v1/documents/:id
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleDocumentError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *DocumentHandler) handleDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDocumentNotFound):
		response.NotFound(c, 21001, err.Error())
	case errors.Is(err, service.ErrDocumentTooLarge):
		response.BadRequest(c, 21002, err.Error())
	case errors.Is(err, service.ErrDocumentTypeNotAllow):
		response.BadRequest(c, 21003, err.Error())
	case errors.Is(err, service.ErrDocumentFileMissing):
		response.NotFound(c, 21004, err.Error())
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 14001, err.Error())
	default:
		handleCommonError(c, err)
	}
}
