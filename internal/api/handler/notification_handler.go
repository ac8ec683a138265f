package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hr-intelligence/backend/internal/dto"
	"hr-intelligence/backend/internal/service"
	"hr-intelligence/backend/pkg/response"
)

// NotificationHandler bildirim HTTP katmanı. Tüm işlemler oturum sahibinin
// kendi bildirimleri üzerindedir.
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler NotificationHandler oluşturur
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// ListNotifications GET /api/v1/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	employeeID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.NotificationListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.notificationSvc.List(c.Request.Context(), employeeID, &req)
	if err != nil {
		h.handleNotificationError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// UnreadCount GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	employeeID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationSvc.UnreadCount(c.Request.Context(), employeeID)
	if err != nil {
		h.handleNotificationError(c, err)
		return
	}
	response.OK(c, dto.CountResponse{Count: count})
}

// MarkRead PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	employeeID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), id, employeeID); err != nil {
		h.handleNotificationError(c, err)
		return
	}
	response.OK(c, nil)
}

// MarkAllRead PUT /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	employeeID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationSvc.MarkAllRead(c.Request.Context(), employeeID)
	if err != nil {
		h.handleNotificationError(c, err)
		return
	}
	response.OK(c, dto.CountResponse{Count: count})
}

// DeleteNotification DELETE /api/v1/notifications/:id
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	employeeID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationSvc.Delete(c.Request.Context(), id, employeeID); err != nil {
		h.handleNotificationError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *NotificationHandler) handleNotificationError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotificationNotFound) {
		response.NotFound(c, 19001, err.Error())
		return
	}
	handleCommonError(c, err)
}
