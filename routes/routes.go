package routes

import (
	"github.com/gofiber/fiber/v2"

	"belegwerk-backend/controllers"
	"belegwerk-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard (replays the stored response for retried mutations)
	protected.Use(middlewares.Idempotency())

	// Customers
	protected.Post("/customer", controllers.CreateCustomer)
	protected.Get("/customers", controllers.GetCustomers)
	protected.Get("/customer/:id", controllers.GetCustomer)
	protected.Put("/customer/:id", controllers.UpdateCustomer)

	// Suppliers
	protected.Post("/supplier", controllers.CreateSupplier)
	protected.Get("/suppliers", controllers.GetSuppliers)
	protected.Put("/supplier/:id", controllers.UpdateSupplier)

	// Products
	protected.Post("/product", controllers.CreateProducts) // batch create
	protected.Get("/products", controllers.GetProducts)
	protected.Put("/products/:id", controllers.UpdateProduct)

	// Brand settings (colors, assets, templates, recurring text blocks)
	protected.Get("/brand", controllers.GetBrand)
	protected.Put("/brand", controllers.UpdateBrand)

	// Documents (versioned lifecycle with payments)
	protected.Post("/document", controllers.CreateDocument)
	protected.Get("/documents", controllers.GetDocuments)
	protected.Get("/document/:id", controllers.GetDocument)
	protected.Put("/documents/:id", controllers.UpdateDocument)
	protected.Put("/documents/:id/convert", controllers.ConvertDocument)
	protected.Put("/documents/:id/publish", controllers.PublishDocument)
	protected.Get("/documents/:id/versions", controllers.GetDocumentVersions)
	protected.Post("/documents/:id/payments", controllers.CreatePayment)
	protected.Get("/documents/:id/payments", controllers.ListPayments)

	// Rendered output
	protected.Get("/documents/:id/pdf", controllers.RenderDocumentPDF)
}
