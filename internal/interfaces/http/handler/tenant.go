package handler

import (
	"github.com/gin-gonic/gin"
	rentapp "github.com/rentdesk/backend/internal/application/rent"
	tenancyapp "github.com/rentdesk/backend/internal/application/tenancy"
)

// TenantHandler handles tenant endpoints
type TenantHandler struct {
	BaseHandler
	tenants  *tenancyapp.TenantService
	payments *rentapp.PaymentService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenants *tenancyapp.TenantService, payments *rentapp.PaymentService) *TenantHandler {
	return &TenantHandler{tenants: tenants, payments: payments}
}

// Create godoc
//
//	@Summary		Move a tenant into a vacant unit
//	@Description	Creates the tenant and occupies the unit in one transaction
//	@Tags			tenants
//	@Param			X-Business-ID	header	string							true	"Business ID"
//	@Param			request			body	tenancyapp.CreateTenantRequest	true	"Tenant"
//	@Failure		409				"unit not vacant"
//	@Router			/tenants [post]
func (h *TenantHandler) Create(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var req tenancyapp.CreateTenantRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.tenants.Create(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *TenantHandler) GetByID(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.tenants.GetByID(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *TenantHandler) List(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var filter tenancyapp.TenantListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.tenants.List(c.Request.Context(), businessID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, size := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, items, total, page, size)
}

func (h *TenantHandler) Update(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req tenancyapp.UpdateTenantRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.tenants.Update(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes the tenant and frees the unit when it was still occupied
func (h *TenantHandler) Delete(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	if err := h.tenants.Delete(c.Request.Context(), businessID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UpdateStatus godoc
//
//	@Summary		Change a tenant's status
//	@Description	moved_out and evicted vacate the unit; active re-occupies it
//	@Tags			tenants
//	@Router			/tenants/{id}/status [patch]
func (h *TenantHandler) UpdateStatus(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req tenancyapp.UpdateTenantStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.tenants.UpdateStatus(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *TenantHandler) Balance(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.tenants.Balance(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// TotalDue returns this month's rent and utilities plus any arrears
func (h *TenantHandler) TotalDue(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.tenants.TotalDue(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Payments lists the payment history of one tenant
func (h *TenantHandler) Payments(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var filter rentapp.PaymentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.payments.ListByTenant(c.Request.Context(), businessID, id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, size := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, items, total, page, size)
}

func (h *TenantHandler) RequestDocumentUpload(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req tenancyapp.DocumentUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.tenants.RequestDocumentUpload(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *TenantHandler) AttachDocument(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req tenancyapp.AttachDocumentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.tenants.AttachDocument(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
