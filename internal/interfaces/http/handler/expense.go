package handler

import (
	"github.com/gin-gonic/gin"
	expenseapp "github.com/rentdesk/backend/internal/application/expense"
)

// ExpenseHandler handles expense endpoints
type ExpenseHandler struct {
	BaseHandler
	expenses *expenseapp.Service
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenses *expenseapp.Service) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// Create godoc
//
//	@Summary	Record an expense against a property
//	@Tags		expenses
//	@Param		X-Business-ID	header	string							true	"Business ID"
//	@Param		request			body	expenseapp.CreateExpenseRequest	true	"Expense"
//	@Router		/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var req expenseapp.CreateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.expenses.Create(c.Request.Context(), businessID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *ExpenseHandler) GetByID(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	resp, err := h.expenses.GetByID(c.Request.Context(), businessID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *ExpenseHandler) List(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var filter expenseapp.ExpenseListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.expenses.List(c.Request.Context(), businessID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, size := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, items, total, page, size)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req expenseapp.UpdateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.expenses.Update(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	if err := h.expenses.Delete(c.Request.Context(), businessID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Summary godoc
//
//	@Summary	Expense totals per category
//	@Tags		expenses
//	@Param		X-Business-ID	header	string	true	"Business ID"
//	@Param		start_date		query	string	false	"First day, YYYY-MM-DD"
//	@Param		end_date		query	string	false	"Last day, YYYY-MM-DD"
//	@Router		/expenses/summary [get]
func (h *ExpenseHandler) Summary(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	var q expenseapp.PeriodQuery
	if !h.bindQuery(c, &q) {
		return
	}

	resp, err := h.expenses.Summary(c.Request.Context(), businessID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ForProperty lists one property's expenses with their breakdown
func (h *ExpenseHandler) ForProperty(c *gin.Context) {
	businessID, ok := h.businessID(c)
	if !ok {
		return
	}
	propertyID, ok := h.pathID(c, "propertyId")
	if !ok {
		return
	}
	var q expenseapp.PeriodQuery
	if !h.bindQuery(c, &q) {
		return
	}

	resp, err := h.expenses.ForProperty(c.Request.Context(), businessID, propertyID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RequestReceiptUpload returns a presigned URL for a receipt scan
func (h *ExpenseHandler) RequestReceiptUpload(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req ImageUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.expenses.RequestReceiptUpload(c.Request.Context(), businessID, id, req.FileName, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *ExpenseHandler) AttachReceipt(c *gin.Context) {
	businessID, id, ok := h.scoped(c)
	if !ok {
		return
	}
	var req expenseapp.AttachReceiptRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.expenses.AttachReceipt(c.Request.Context(), businessID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
