package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/auth"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/orders"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/usecase"
	inframail "github.com/rylessKechit/BellaFleurs-sub000/internal/infrastructure/mail"
	infrapdf "github.com/rylessKechit/BellaFleurs-sub000/internal/infrastructure/pdf"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/rylessKechit/BellaFleurs-sub000/internal/interfaces/http"
	"github.com/rylessKechit/BellaFleurs-sub000/pkg/config"
	"github.com/rylessKechit/BellaFleurs-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	accountRepo := postgres.NewCorporateAccountRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	invoiceRepo := postgres.NewCorporateInvoiceRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	defaultVAT, err := decimal.NewFromString(cfg.Billing.DefaultVATRate)
	if err != nil {
		log.Fatal().Err(err).
			Str("valor", cfg.Billing.DefaultVATRate).
			Msg("tasa de IVA por defecto inválida")
	}

	accountUC := usecase.NewCorporateAccountUseCase(accountRepo, usecase.BillingDefaults{
		VATRate:         defaultVAT,
		PaymentTermDays: cfg.Billing.PaymentTermDays,
	})
	budgetUC := billing.NewBudgetUseCase(accountRepo, orderRepo)
	createOrderUC := orders.NewCreateOrderUseCase(txRunner, log)
	orderStatusUC := orders.NewStatusUseCase(orderRepo, log)

	// Despacho de facturas: PDF con maroto + correo SMTP (modo simulado si
	// SMTP_HOST no está definido).
	renderer := infrapdf.NewMarotoInvoiceRenderer()
	mailer := inframail.NewGomailSender(cfg.SMTP, log)
	dispatchUC := billing.NewDispatchInvoiceUseCase(
		invoiceRepo, accountRepo, settingsRepo,
		renderer, mailer, log,
		cfg.Billing.PaymentLinkBase,
	)
	generateUC := billing.NewGenerateInvoiceUseCase(txRunner, accountRepo, invoiceRepo, dispatchUC, log)
	invoiceStatusUC := billing.NewInvoiceStatusUseCase(invoiceRepo, accountRepo, log)

	settingsUC := usecase.NewSettingsUseCase(settingsRepo)
	dashboardUC := usecase.NewDashboardUseCase(statsRepo)
	authUC := auth.NewUseCase(userRepo, auth.Config{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bella Fleurs API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		AccountUC:   accountUC,
		BudgetUC:    budgetUC,
		GenerateUC:  generateUC,
		InvoiceUC:   invoiceStatusUC,
		DispatchUC:  dispatchUC,
		CreateOrder: createOrderUC,
		OrderUC:     orderStatusUC,
		SettingsUC:  settingsUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
