package handler

import (
	"github.com/gin-gonic/gin"
	propertyapp "github.com/rentdesk/backend/internal/application/property"
)

// UtilityHandler handles the utility catalog
type UtilityHandler struct {
	BaseHandler
	utilities *propertyapp.UtilityService
}

// NewUtilityHandler creates a new UtilityHandler
func NewUtilityHandler(utilities *propertyapp.UtilityService) *UtilityHandler {
	return &UtilityHandler{utilities: utilities}
}

// Create adds a utility to the catalog
func (h *UtilityHandler) Create(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var req propertyapp.CreateUtilityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.utilities.Create(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *UtilityHandler) GetByID(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.utilities.GetByID(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *UtilityHandler) List(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var filter propertyapp.UtilityListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.utilities.List(c.Request.Context(), businessID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, size := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, items, total, page, size)
}

func (h *UtilityHandler) Update(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req propertyapp.UpdateUtilityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.utilities.Update(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a utility no unit still references
func (h *UtilityHandler) Delete(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	if err := h.utilities.Delete(c.Request.Context(), businessID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
