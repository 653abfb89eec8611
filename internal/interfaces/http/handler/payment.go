package handler

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	rentapp "github.com/rentdesk/backend/internal/application/rent"
)

// PaymentHandler handles rent payment endpoints
type PaymentHandler struct {
	BaseHandler
	payments *rentapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments *rentapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Record godoc
//
//	@Summary		Record a payment
//	@Description	Rent payments without a breakdown are split into rent and utilities. The tenant balance moves in the same transaction.
//	@Tags			payments
//	@Param			X-Business-ID	header	string							true	"Business ID"
//	@Param			request			body	rentapp.RecordPaymentRequest	true	"Payment"
//	@Failure		409				"duplicate reference or receipt number"
//	@Router			/payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var req rentapp.RecordPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.payments.Record(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *PaymentHandler) GetByID(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.payments.GetByID(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *PaymentHandler) List(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var filter rentapp.PaymentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.payments.List(c.Request.Context(), businessID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, size := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, items, total, page, size)
}

// Update edits an unconfirmed payment and re-applies its balance effect
func (h *PaymentHandler) Update(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req rentapp.UpdatePaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.payments.Update(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete reverses the payment's balance effect and removes it
func (h *PaymentHandler) Delete(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	if err := h.payments.Delete(c.Request.Context(), businessID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *PaymentHandler) Confirm(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req rentapp.ConfirmPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.payments.Confirm(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Summary totals payments by type, optionally for one month
func (h *PaymentHandler) Summary(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var req rentapp.SummaryRequest
	if !h.bindQuery(c, &req) {
		return
	}

	resp, err := h.payments.Summary(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Receipt godoc
//
//	@Summary	Download the payment receipt
//	@Tags		payments
//	@Produce	application/pdf
//	@Failure	503	"printing not configured"
//	@Router		/payments/{id}/receipt [get]
func (h *PaymentHandler) Receipt(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	doc, err := h.payments.Receipt(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": doc.FileName}))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}
