package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/auth"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/orders"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	AccountUC   *usecase.CorporateAccountUseCase
	BudgetUC    *billing.BudgetUseCase
	GenerateUC  *billing.GenerateInvoiceUseCase
	InvoiceUC   *billing.InvoiceStatusUseCase
	DispatchUC  *billing.DispatchInvoiceUseCase
	CreateOrder *orders.CreateOrderUseCase
	OrderUC     *orders.StatusUseCase
	SettingsUC  *usecase.SettingsUseCase
	DashboardUC *usecase.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Checkout (público: lo invoca la tienda; el token es opcional y solo
	// habilita admin_override)
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.OrderUC)
	api.Post("/orders", OptionalAuthMiddleware(deps.JWTSecret), orderHandler.Create)

	// Configuración vigente (lectura pública: la tienda necesita las franjas)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	api.Get("/settings", settingsHandler.Get)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Pedidos (staff y admin)
	protected.Get("/orders", orderHandler.List)
	protected.Get("/orders/:id", orderHandler.GetByID)
	protected.Patch("/orders/:id/status", orderHandler.UpdateStatus)

	// Cuentas corporativas
	accountHandler := NewAccountHandler(deps.AccountUC, deps.BudgetUC)
	accounts := protected.Group("/corporate/accounts")
	accounts.Get("/", accountHandler.List)
	accounts.Get("/:id", accountHandler.GetByID)
	accounts.Get("/:id/stats", accountHandler.Stats)
	accounts.Get("/:id/admission", accountHandler.Admission)

	// Facturas corporativas
	invoiceHandler := NewInvoiceHandler(deps.GenerateUC, deps.InvoiceUC, deps.DispatchUC)
	accounts.Get("/:id/invoice", invoiceHandler.GetByPeriod)
	invoices := protected.Group("/corporate/invoices")
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Panel corporativo
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/corporate/dashboard", dashboardHandler.Dashboard)

	// Acciones solo admin
	admin := protected.Group("/", RequireAdmin())
	admin.Post("/corporate/accounts", accountHandler.Create)
	admin.Patch("/corporate/accounts/:id", accountHandler.Update)
	admin.Post("/corporate/accounts/:id/activate", accountHandler.Activate)
	admin.Post("/corporate/accounts/:id/suspend", accountHandler.Suspend)
	admin.Post("/corporate/invoices", invoiceHandler.Generate)
	admin.Post("/corporate/invoices/:id/pay", invoiceHandler.MarkPaid)
	admin.Post("/corporate/invoices/:id/cancel", invoiceHandler.Cancel)
	admin.Post("/corporate/invoices/:id/resend", invoiceHandler.Resend)
	admin.Put("/settings", settingsHandler.Update)
}
