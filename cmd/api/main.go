package main

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"propsite_backend/internal/controller"
	"propsite_backend/internal/middleware"
	"propsite_backend/internal/model"
	"propsite_backend/pkg/catalog"
	"propsite_backend/pkg/config"
	"propsite_backend/pkg/cron"
	"propsite_backend/pkg/database"
	"propsite_backend/pkg/email"
	applog "propsite_backend/pkg/logger"
	"propsite_backend/pkg/sheets"
	"propsite_backend/pkg/utils/cloudflare"
	"propsite_backend/pkg/utils/jwt"
)

func setupRoutes(app *fiber.App, cfg *config.Config) {
	api := app.Group("/api")

	api.Get("/health", controller.Health)

	// Public forms
	forms := middleware.FormRateLimit(cfg.RateLimit.FormMax, cfg.RateLimit.FormWindow)
	api.Post("/enquiries", forms, controller.CreateEnquiry)
	api.Post("/bookings", forms, controller.CreateBooking)
	api.Post("/sheets", forms, controller.ForwardToSheets)

	// Public content
	listings := api.Group("/listings")
	listings.Get("/", controller.ListListings)
	listings.Get("/suburbs", controller.ListSuburbs)
	listings.Get("/:slug", controller.GetListingBySlug)

	articles := api.Group("/articles")
	articles.Get("/", controller.ListArticles)
	articles.Get("/categories", controller.ListArticleCategories)
	articles.Get("/:slug", controller.GetArticleBySlug)

	services := api.Group("/services")
	services.Get("/", controller.ListServices)
	services.Get("/:slug", controller.GetServiceBySlug)

	// Admin
	api.Post("/admin/login", forms, controller.AdminLogin)

	admin := api.Group("/admin", middleware.AuthMiddleware())
	admin.Get("/me", controller.Me)
	admin.Get("/stats", controller.GetDashboardStats)
	admin.Get("/enquiries", controller.ListEnquiries)
	admin.Get("/enquiries/:id", controller.GetEnquiry)
	admin.Put("/enquiries/:id/status", controller.UpdateEnquiryStatus)
	admin.Get("/listings", controller.ListAllListings)
	admin.Post("/listings/:id/images", controller.UploadListingImage)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		zap.L().Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

func main() {
	cfg := config.Load()

	log, err := applog.Init(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	jwt.Init(cfg.JWT.Secret, cfg.JWT.TTL)
	if cfg.JWT.Secret == "" {
		log.Warn("JWT_SECRET is not set, admin endpoints will reject every request")
	}

	if cfg.Email.ResendAPIKey != "" {
		err := email.InitEmailService(email.Options{
			APIKey: cfg.Email.ResendAPIKey,
			APIURL: cfg.Email.APIURL,
			From:   cfg.Email.From,
		})
		if err != nil {
			log.Fatal("could not initialize email service", zap.Error(err))
		}
		log.Info("email service initialized")
	} else {
		log.Warn("RESEND_API_KEY is not set, office notifications are disabled")
	}

	if err := database.InitDB(cfg.Database.DSN()); err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}
	if err := database.MigrateDatabase(&model.Listing{}, &model.Enquiry{}); err != nil {
		log.Warn("migration warning", zap.Error(err))
	}

	if err := catalog.Init(); err != nil {
		log.Fatal("could not load catalog", zap.Error(err))
	}
	if n, err := catalog.Default.LoadListingsFromDB(database.GetDB()); err != nil {
		log.Warn("serving fixture listings, database read failed", zap.Error(err))
	} else if n > 0 {
		log.Info("serving listings from database", zap.Int("count", n))
	}

	fallback := sheets.NewFallbackWriter(cfg.Sheets.FallbackDir)
	forwarder := sheets.NewForwarder(sheets.Options{
		WebhookURL: cfg.Sheets.WebhookURL,
		Secret:     cfg.Sheets.Secret,
		Production: cfg.IsProduction(),
		Timeout:    cfg.Sheets.Timeout,
		Fallback:   fallback,
	})
	if !forwarder.Configured() {
		log.Warn("SHEETS_WEBHOOK_URL is not set", zap.Bool("production", cfg.IsProduction()))
	}

	sheetsOrigin := "*"
	if !strings.Contains(cfg.Server.CORSOrigins, ",") {
		sheetsOrigin = cfg.Server.CORSOrigins
	}

	controller.InitEnquiryController(cfg)
	controller.InitSheetsController(forwarder, sheetsOrigin)
	controller.InitAuthController(cfg)

	uploader, err := cloudflare.NewUploader(context.Background(), cfg.R2)
	switch {
	case errors.Is(err, cloudflare.ErrNotConfigured):
		log.Warn("R2 storage is not configured, image uploads are disabled")
	case err != nil:
		log.Fatal("could not initialize R2 client", zap.Error(err))
	default:
		controller.InitUploadController(uploader)
	}

	scheduler := cron.New()
	var digestSender cron.DigestSender
	if email.GlobalEmailService != nil {
		digestSender = email.GlobalEmailService
	}
	if err := cron.InitEnquiryDigestCron(scheduler, cfg.Cron.DigestSchedule, database.GetDB, digestSender, cfg.Email.OfficeEmail); err != nil {
		log.Error("could not initialize enquiry digest cron", zap.Error(err))
	}
	if !cfg.IsProduction() {
		if err := cron.InitFallbackCleanupCron(scheduler, cfg.Cron.CleanupSchedule, fallback, cfg.Sheets.RetentionDays); err != nil {
			log.Error("could not initialize fallback cleanup cron", zap.Error(err))
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// Registered ahead of the CORS middleware so the proxy answers its own
	// preflight.
	app.Options("/api/sheets", controller.SheetsPreflight)

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	setupRoutes(app, cfg)

	log.Info("server is running", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
