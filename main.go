package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"membership-platform/handlers"
	"membership-platform/middleware"
	"membership-platform/models"
	"membership-platform/services"
	"membership-platform/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Role",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Chapter{},
		&models.PointsLogEntry{},
		&models.Course{},
		&models.Module{},
		&models.Quiz{},
		&models.UserProgress{},
		&models.ActionAlert{},
		&models.AlertResponse{},
		&models.ActivityReport{},
		&models.AmbassadorAgreement{},
		&models.Notification{},
		&models.NewsItem{},
		&models.MenuItem{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	notificationService := services.NewNotificationService(db)
	ledgerService := services.NewLedgerService(db, notificationService)
	progressService := services.NewProgressService(db, ledgerService)
	progressService.AllowRepeatQuizRewards = strings.EqualFold(os.Getenv("ALLOW_REPEAT_QUIZ_REWARDS"), "true")
	alertService := services.NewAlertService(db, ledgerService)
	reportService := services.NewReportService(db, ledgerService)
	agreementService := services.NewAgreementService(db)
	chapterService := services.NewChapterService(db)
	catalogService := services.NewCatalogService(db)
	profileService := services.NewProfileService(db)
	newsService := services.NewNewsService(db)
	menuService := services.NewMenuService(db)

	wpBaseURL := os.Getenv("WORDPRESS_BASE_URL")
	if wpBaseURL == "" {
		wpBaseURL = "https://ssdp.org"
	}
	newsSyncWorker := workers.NewNewsSyncWorker(db, wpBaseURL, 30*time.Minute)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go newsSyncWorker.Start(ctx)

	handlers.SetupProfileRoutes(app, profileService)
	handlers.SetupAcademyRoutes(app, catalogService, progressService)
	handlers.SetupPointsRoutes(app, ledgerService)
	handlers.SetupAlertRoutes(app, alertService)
	handlers.SetupReportRoutes(app, reportService)
	handlers.SetupAgreementRoutes(app, agreementService)
	handlers.SetupChapterRoutes(app, chapterService)
	handlers.SetupNewsRoutes(app, newsService, newsSyncWorker)
	handlers.SetupNotificationRoutes(app, notificationService)
	handlers.SetupMenuRoutes(app, menuService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ News Sync Worker running (every 30m)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
