package handler

import (
	"github.com/gin-gonic/gin"
	maintenanceapp "github.com/rentdesk/backend/internal/application/maintenance"
)

// MaintenanceHandler handles maintenance request endpoints
type MaintenanceHandler struct {
	BaseHandler
	requests *maintenanceapp.Service
}

// NewMaintenanceHandler creates a new MaintenanceHandler
func NewMaintenanceHandler(requests *maintenanceapp.Service) *MaintenanceHandler {
	return &MaintenanceHandler{requests: requests}
}

// Create opens a request against a unit
func (h *MaintenanceHandler) Create(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var req maintenanceapp.CreateRequestRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.requests.Create(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *MaintenanceHandler) GetByID(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.requests.GetByID(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *MaintenanceHandler) List(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var filter maintenanceapp.RequestListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.requests.List(c.Request.Context(), businessID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, size := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, items, total, page, size)
}

func (h *MaintenanceHandler) Update(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req maintenanceapp.UpdateRequestRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.requests.Update(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req maintenanceapp.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.requests.UpdateStatus(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *MaintenanceHandler) Delete(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	if err := h.requests.Delete(c.Request.Context(), businessID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Stats counts requests per status and priority
func (h *MaintenanceHandler) Stats(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	resp, err := h.requests.Stats(c.Request.Context(), businessID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
