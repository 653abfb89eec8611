package handler

import (
	"github.com/gin-gonic/gin"
	propertyapp "github.com/rentdesk/backend/internal/application/property"
	tenancyapp "github.com/rentdesk/backend/internal/application/tenancy"
)

// PropertyHandler handles property endpoints
type PropertyHandler struct {
	BaseHandler
	properties *propertyapp.PropertyService
	units      *propertyapp.UnitService
	tenants    *tenancyapp.TenantService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(properties *propertyapp.PropertyService, units *propertyapp.UnitService, tenants *tenancyapp.TenantService) *PropertyHandler {
	return &PropertyHandler{properties: properties, units: units, tenants: tenants}
}

// Create godoc
//
//	@Summary	Register a property
//	@Tags		properties
//	@Param		X-Business-ID	header	string							true	"Business ID"
//	@Param		request			body	propertyapp.CreatePropertyRequest	true	"Property"
//	@Router		/properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var req propertyapp.CreatePropertyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.properties.Create(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID godoc
//
//	@Summary	Get a property with its unit counts
//	@Tags		properties
//	@Router		/properties/{id} [get]
func (h *PropertyHandler) GetByID(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.properties.GetByID(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
//
//	@Summary	List properties
//	@Tags		properties
//	@Router		/properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var filter propertyapp.PropertyListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.properties.List(c.Request.Context(), businessID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, size := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, items, total, page, size)
}

// Update godoc
//
//	@Summary	Update a property
//	@Tags		properties
//	@Router		/properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req propertyapp.UpdatePropertyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.properties.Update(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
//
//	@Summary	Delete a property without units
//	@Tags		properties
//	@Router		/properties/{id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	if err := h.properties.Delete(c.Request.Context(), businessID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Recompute rebuilds the cached unit counts from the unit ledger
func (h *PropertyHandler) Recompute(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.properties.Recompute(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListUnits lists the units of one property
func (h *PropertyHandler) ListUnits(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var filter propertyapp.UnitListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.units.ListByProperty(c.Request.Context(), businessID, id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, size := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, items, total, page, size)
}

// ListTenants lists the tenants housed in one property
func (h *PropertyHandler) ListTenants(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var filter tenancyapp.TenantListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.tenants.ListByProperty(c.Request.Context(), businessID, id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, size := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, items, total, page, size)
}
