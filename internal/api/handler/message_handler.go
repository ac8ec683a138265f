package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/response"
)

// MessageHandler çalışanlar arası mesajlaşma HTTP katmanı
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler MessageHandler oluşturur
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// SendMessage POST /api/v1/messages
func (h *MessageHandler) SendMessage(c *gin.Context) {
	senderID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.messageSvc.Send(c.Request.Context(), &req, senderID)
	if err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.Created(c, msg)
}

// Inbox GET /api/v1/messages/inbox
func (h *MessageHandler) Inbox(c *gin.Context) {
	h.listBox(c, h.messageSvc.Inbox)
}

// Sent GET /api/v1/messages/sent
func (h *MessageHandler) Sent(c *gin.Context) {
	h.listBox(c, h.messageSvc.Sent)
}

func (h *MessageHandler) listBox(c *gin.Context, fetch func(ctx context.Context, employeeID string, page *dto.PaginationRequest) ([]dto.MessageResponse, int64, error)) {
	employeeID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.PaginationRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := fetch(c.Request.Context(), employeeID, &req)
	if err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// UnreadCount GET /api/v1/messages/unread-count
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	employeeID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	count, err := h.messageSvc.UnreadCount(c.Request.Context(), employeeID)
	if err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.OK(c, dto.CountResponse{Count: count})
}

// GetMessage alıcı açtığında okundu işaretlenir
// GET /api/v1/messages/:id
func (h *MessageHandler) GetMessage(c *gin.Context) {
	employeeID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	msg, err := h.messageSvc.Get(c.Request.Context(), id, employeeID)
	if err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.OK(c, msg)
}

// DeleteMessage yalnızca çağıranın kutusundan kaldırır
// DELETE /api/v1/messages/:id
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	employeeID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	if err := h.messageSvc.Delete(c.Request.Context(), id, employeeID); err != nil {
		h.handleMessageError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *MessageHandler) handleMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMessageNotFound):
		response.NotFound(c, 20001, err.Error())
	case errors.Is(err, service.ErrMessageToSelf):
		response.BadRequest(c, 20002, err.Error())
	case errors.Is(err, service.ErrRecipientNotFound):
		response.NotFound(c, 20003, err.Error())
	case errors.Is(err, service.ErrRecipientUnavailable):
		response.BadRequest(c, 20004, err.Error())
	default:
		handleCommonError(c, err)
	}
}
