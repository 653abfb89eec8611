package handler

import (
	"github.com/gin-gonic/gin"
	notificationapp "github.com/rentdesk/backend/internal/application/notification"
)

// NotificationHandler serves the in-app notification feed
type NotificationHandler struct {
	BaseHandler
	notifications *notificationapp.Service
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *notificationapp.Service) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) Create(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var req notificationapp.CreateNotificationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.notifications.Create(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *NotificationHandler) GetByID(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.notifications.GetByID(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
//
//	@Summary	Notification feed, newest first
//	@Tags		notifications
//	@Param		X-Business-ID	header	string	true	"Business ID"
//	@Param		recipient_id	query	string	false	"Recipient"
//	@Param		type			query	string	false	"Notification type"
//	@Param		is_read			query	bool	false	"Read flag"
//	@Router		/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var filter notificationapp.NotificationListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.notifications.List(c.Request.Context(), businessID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, size := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, items, total, page, size)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.notifications.MarkRead(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkAllRead accepts an empty body for the whole business
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var req notificationapp.MarkAllReadRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.notifications.MarkAllRead(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	if err := h.notifications.Delete(c.Request.Context(), businessID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *NotificationHandler) Stats(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var q notificationapp.StatsQuery
	if !h.bindQuery(c, &q) {
		return
	}

	resp, err := h.notifications.Stats(c.Request.Context(), businessID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
