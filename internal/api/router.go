package api

import (
	v1 "github.com/asejik/invoice-aso-oke/internal/api/v1"
	"github.com/asejik/invoice-aso-oke/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Profile   *v1.ProfileHandler
	Customer  *v1.CustomerHandler
	Invoice   *v1.InvoiceHandler
	Dashboard *v1.DashboardHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.ErrorHandler())

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Business profile routes
	profile := router.Group("/profile")
	{
		profile.PUT("", handlers.Profile.UpdateProfile)
		profile.GET("", handlers.Profile.GetProfile)
	}

	// Customer routes
	customers := router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.ListCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.PUT("/:id", handlers.Customer.UpdateCustomer)
	}

	// Invoice routes
	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/stream", handlers.Invoice.StreamInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
		invoices.POST("/:id/payments", handlers.Invoice.RecordPayment)
		invoices.GET("/:id/payments", handlers.Invoice.GetPaymentHistory)
		invoices.GET("/:id/pdf", handlers.Invoice.DownloadPDF)
	}

	// Dashboard routes
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("", handlers.Dashboard.GetStats)
		dashboard.GET("/stream", handlers.Dashboard.StreamStats)
	}
}
