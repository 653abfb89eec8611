package handler

import (
	"github.com/gin-gonic/gin"
	propertyapp "github.com/rentdesk/backend/internal/application/property"
)

// UnitHandler handles unit endpoints
type UnitHandler struct {
	BaseHandler
	units *propertyapp.UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(units *propertyapp.UnitService) *UnitHandler {
	return &UnitHandler{units: units}
}

// ImageUploadRequest names the photo a client is about to upload
type ImageUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// Create godoc
//
//	@Summary	Add a vacant unit to a property
//	@Tags		units
//	@Param		X-Business-ID	header	string							true	"Business ID"
//	@Param		request			body	propertyapp.CreateUnitRequest	true	"Unit"
//	@Router		/units [post]
func (h *UnitHandler) Create(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var req propertyapp.CreateUnitRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.units.Create(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID godoc
//
//	@Summary	Get a unit
//	@Tags		units
//	@Router		/units/{id} [get]
func (h *UnitHandler) GetByID(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.units.GetByID(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
//
//	@Summary	List units
//	@Tags		units
//	@Router		/units [get]
func (h *UnitHandler) List(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var filter propertyapp.UnitListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.units.List(c.Request.Context(), businessID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, size := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, items, total, page, size)
}

// ListAvailable returns every vacant unit of the business
func (h *UnitHandler) ListAvailable(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	items, err := h.units.ListAvailable(c.Request.Context(), businessID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Update godoc
//
//	@Summary	Update unit details
//	@Tags		units
//	@Router		/units/{id} [put]
func (h *UnitHandler) Update(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req propertyapp.UpdateUnitRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.units.Update(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus godoc
//
//	@Summary	Move a unit to vacant, maintenance or reserved
//	@Tags		units
//	@Router		/units/{id}/status [patch]
func (h *UnitHandler) UpdateStatus(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req propertyapp.UpdateUnitStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.units.UpdateStatus(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
//
//	@Summary	Delete an unoccupied unit
//	@Tags		units
//	@Router		/units/{id} [delete]
func (h *UnitHandler) Delete(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	if err := h.units.Delete(c.Request.Context(), businessID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// PutUtility attaches a utility to the unit or replaces its terms
func (h *UnitHandler) PutUtility(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req propertyapp.UnitUtilityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.units.AddOrReplaceUtility(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveUtility detaches a utility from the unit
func (h *UnitHandler) RemoveUtility(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	utilityID, ok := h.pathID(c, "utilityId")
	if !ok {
		return
	}

	resp, err := h.units.RemoveUtility(c.Request.Context(), businessID, id, utilityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MonthlyTotal returns rent plus the monthly share of chargeable utilities
func (h *UnitHandler) MonthlyTotal(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.units.MonthlyTotal(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RequestImageUpload returns a presigned URL for a unit photo
func (h *UnitHandler) RequestImageUpload(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req ImageUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.units.RequestImageUpload(c.Request.Context(), businessID, id, req.FileName, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AttachImage records an uploaded photo on the unit
func (h *UnitHandler) AttachImage(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req propertyapp.AttachImageRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.units.AttachImage(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
