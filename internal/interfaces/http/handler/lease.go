package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	tenancyapp "github.com/rentdesk/backend/internal/application/tenancy"
)

// LeaseHandler handles lease endpoints
type LeaseHandler struct {
	BaseHandler
	leases *tenancyapp.LeaseService
}

// NewLeaseHandler creates a new LeaseHandler
func NewLeaseHandler(leases *tenancyapp.LeaseService) *LeaseHandler {
	return &LeaseHandler{leases: leases}
}

// Create drafts a pending lease
func (h *LeaseHandler) Create(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var req tenancyapp.CreateLeaseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.leases.Create(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *LeaseHandler) GetByID(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.leases.GetByID(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *LeaseHandler) List(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var filter tenancyapp.LeaseListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.leases.List(c.Request.Context(), businessID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, size := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, items, total, page, size)
}

func (h *LeaseHandler) Update(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req tenancyapp.UpdateLeaseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.leases.Update(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *LeaseHandler) Delete(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	if err := h.leases.Delete(c.Request.Context(), businessID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Sign records a signature. The lease activates once both parties signed.
func (h *LeaseHandler) Sign(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req tenancyapp.SignLeaseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.leases.Sign(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *LeaseHandler) Terminate(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.leases.Terminate(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Renew closes the lease as renewed and returns its successor
func (h *LeaseHandler) Renew(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req tenancyapp.RenewLeaseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.leases.Renew(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Expiring lists active leases ending within ?days= (service default when 0)
func (h *LeaseHandler) Expiring(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 366 {
			h.BadRequest(c, "days must be between 0 and 366")
			return
		}
		days = n
	}

	items, err := h.leases.Expiring(c.Request.Context(), businessID, days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}
