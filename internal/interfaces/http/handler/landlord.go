package handler

import (
	"github.com/gin-gonic/gin"
	landlordapp "github.com/rentdesk/backend/internal/application/landlord"
)

// LandlordHandler handles landlord endpoints
type LandlordHandler struct {
	BaseHandler
	landlords *landlordapp.Service
}

// NewLandlordHandler creates a new LandlordHandler
func NewLandlordHandler(landlords *landlordapp.Service) *LandlordHandler {
	return &LandlordHandler{landlords: landlords}
}

// Create godoc
//
//	@Summary	Register a landlord
//	@Tags		landlords
//	@Param		X-Business-ID	header	string								true	"Business ID"
//	@Param		request			body	landlordapp.CreateLandlordRequest	true	"Landlord"
//	@Router		/landlords [post]
func (h *LandlordHandler) Create(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var req landlordapp.CreateLandlordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.landlords.Create(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *LandlordHandler) GetByID(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.landlords.GetByID(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *LandlordHandler) List(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var filter landlordapp.LandlordListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.landlords.List(c.Request.Context(), businessID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, size := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, items, total, page, size)
}

func (h *LandlordHandler) Update(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req landlordapp.UpdateLandlordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.landlords.Update(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *LandlordHandler) UpdateStatus(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req landlordapp.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.landlords.UpdateStatus(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a landlord that owns no property
func (h *LandlordHandler) Delete(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	if err := h.landlords.Delete(c.Request.Context(), businessID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *LandlordHandler) Stats(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.landlords.Stats(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
