package router

import (
	"github.com/rentdesk/backend/internal/interfaces/http/handler"
)

// Handlers bundles every API handler
type Handlers struct {
	Property     *handler.PropertyHandler
	Unit         *handler.UnitHandler
	Utility      *handler.UtilityHandler
	Tenant       *handler.TenantHandler
	Lease        *handler.LeaseHandler
	Payment      *handler.PaymentHandler
	Maintenance  *handler.MaintenanceHandler
	Expense      *handler.ExpenseHandler
	Landlord     *handler.LandlordHandler
	Notification *handler.NotificationHandler
	Dashboard    *handler.DashboardHandler
	System       *handler.SystemHandler
}

// Groups builds the route groups of the API
func Groups(h Handlers) []*ResourceGroup {
	properties := NewResourceGroup("/properties").
		POST("", h.Property.Create).
		GET("", h.Property.List).
		GET("/:id", h.Property.GetByID).
		PUT("/:id", h.Property.Update).
		DELETE("/:id", h.Property.Delete).
		GET("/:id/units", h.Property.ListUnits).
		GET("/:id/tenants", h.Property.ListTenants).
		POST("/:id/recompute", h.Property.Recompute)

	units := NewResourceGroup("/units").
		POST("", h.Unit.Create).
		GET("", h.Unit.List).
		GET("/available", h.Unit.ListAvailable).
		GET("/:id", h.Unit.GetByID).
		PUT("/:id", h.Unit.Update).
		DELETE("/:id", h.Unit.Delete).
		PATCH("/:id/status", h.Unit.UpdateStatus).
		GET("/:id/monthly-total", h.Unit.MonthlyTotal).
		PUT("/:id/utilities", h.Unit.PutUtility).
		DELETE("/:id/utilities/:utilityId", h.Unit.RemoveUtility).
		POST("/:id/images/upload-url", h.Unit.RequestImageUpload).
		POST("/:id/images", h.Unit.AttachImage)

	utilities := NewResourceGroup("/utilities").
		POST("", h.Utility.Create).
		GET("", h.Utility.List).
		GET("/:id", h.Utility.GetByID).
		PUT("/:id", h.Utility.Update).
		DELETE("/:id", h.Utility.Delete)

	tenants := NewResourceGroup("/tenants").
		POST("", h.Tenant.Create).
		GET("", h.Tenant.List).
		GET("/:id", h.Tenant.GetByID).
		PUT("/:id", h.Tenant.Update).
		DELETE("/:id", h.Tenant.Delete).
		PATCH("/:id/status", h.Tenant.UpdateStatus).
		GET("/:id/balance", h.Tenant.Balance).
		GET("/:id/total-due", h.Tenant.TotalDue).
		GET("/:id/payments", h.Tenant.Payments).
		POST("/:id/documents/upload-url", h.Tenant.RequestDocumentUpload).
		POST("/:id/documents", h.Tenant.AttachDocument)

	payments := NewResourceGroup("/payments").
		POST("", h.Payment.Record).
		GET("", h.Payment.List).
		GET("/summary", h.Payment.Summary).
		GET("/:id", h.Payment.GetByID).
		PUT("/:id", h.Payment.Update).
		DELETE("/:id", h.Payment.Delete).
		POST("/:id/confirm", h.Payment.Confirm).
		GET("/:id/receipt", h.Payment.Receipt)

	leases := NewResourceGroup("/leases").
		POST("", h.Lease.Create).
		GET("", h.Lease.List).
		GET("/expiring", h.Lease.Expiring).
		GET("/:id", h.Lease.GetByID).
		PUT("/:id", h.Lease.Update).
		DELETE("/:id", h.Lease.Delete).
		POST("/:id/sign", h.Lease.Sign).
		POST("/:id/renew", h.Lease.Renew).
		POST("/:id/terminate", h.Lease.Terminate)

	maintenance := NewResourceGroup("/maintenance").
		POST("", h.Maintenance.Create).
		GET("", h.Maintenance.List).
		GET("/stats", h.Maintenance.Stats).
		GET("/:id", h.Maintenance.GetByID).
		PUT("/:id", h.Maintenance.Update).
		DELETE("/:id", h.Maintenance.Delete).
		PATCH("/:id/status", h.Maintenance.UpdateStatus)

	expenses := NewResourceGroup("/expenses").
		POST("", h.Expense.Create).
		GET("", h.Expense.List).
		GET("/summary", h.Expense.Summary).
		GET("/property/:propertyId", h.Expense.ForProperty).
		GET("/:id", h.Expense.GetByID).
		PUT("/:id", h.Expense.Update).
		DELETE("/:id", h.Expense.Delete).
		POST("/:id/receipt/upload-url", h.Expense.RequestReceiptUpload).
		POST("/:id/receipt", h.Expense.AttachReceipt)

	landlords := NewResourceGroup("/landlords").
		POST("", h.Landlord.Create).
		GET("", h.Landlord.List).
		GET("/:id", h.Landlord.GetByID).
		PUT("/:id", h.Landlord.Update).
		DELETE("/:id", h.Landlord.Delete).
		PATCH("/:id/status", h.Landlord.UpdateStatus).
		GET("/:id/stats", h.Landlord.Stats)

	notifications := NewResourceGroup("/notifications").
		POST("", h.Notification.Create).
		GET("", h.Notification.List).
		GET("/stats", h.Notification.Stats).
		PATCH("/read-all", h.Notification.MarkAllRead).
		GET("/:id", h.Notification.GetByID).
		DELETE("/:id", h.Notification.Delete).
		PATCH("/:id/read", h.Notification.MarkRead)

	dashboard := NewResourceGroup("/dashboard").
		GET("/summary", h.Dashboard.Summary)

	system := NewResourceGroup("/system").Public().
		GET("/ping", h.System.Ping).
		GET("/info", h.System.GetSystemInfo)

	return []*ResourceGroup{
		properties, units, utilities, tenants, payments, leases, maintenance,
		expenses, landlords, notifications, dashboard, system,
	}
}
