package main

import (
	"context"
	"errors"
	"log"
	"runtime"
	"time"

	"github.com/fadilmartias/life-wheel/internal/config"
	"github.com/fadilmartias/life-wheel/internal/database"
	"github.com/fadilmartias/life-wheel/internal/domain/fiber/handler"
	"github.com/fadilmartias/life-wheel/internal/logger"
	"github.com/fadilmartias/life-wheel/internal/middleware"
	"github.com/fadilmartias/life-wheel/internal/repository"
	"github.com/fadilmartias/life-wheel/internal/service"
	"github.com/fadilmartias/life-wheel/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load .env file
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	authConfig := config.LoadAuthConfig()
	aiConfig := config.LoadAIConfig()

	appLog, err := logger.New(appConfig.Env)
	if err != nil {
		log.Fatalf("Could not create logger: %v", err)
	}
	defer appLog.Sync()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"ok": false, "error": message})
		},
	})
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.CSRFHeader,
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(50, 1*time.Minute))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	db, err := database.Open(config.LoadDBConfig(), appConfig.Env)
	if err != nil {
		appLog.Fatal("database connection failed", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		appLog.Fatal("database migration failed", "error", err)
	}

	assessmentRepo := repository.NewAssessmentRepository(db)
	generator := service.NewTextGenerator(ctx, appLog, aiConfig, config.LoadGeminiConfig(), config.LoadOpenRouterConfig())
	uc := usecase.NewAssessmentUsecase(assessmentRepo, generator, appLog, usecase.WithAITimeout(aiConfig.Timeout))
	assessmentHandler := handler.NewAssessmentHandler(uc, appConfig.BaseURL)

	assessmentHandler.RegisterRoutes(app,
		middleware.Auth([]byte(authConfig.JWTSecret), authConfig.CookieName),
		middleware.CSRF(appConfig.IsProduction()),
		middleware.RateLimiter(10, 1*time.Minute),
	)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			appLog.Debug("runtime stats", "goroutines", runtime.NumGoroutine())
		}
	}()

	appLog.Info("server running", "port", appConfig.Port, "ai_provider", generator.Name())
	if err := app.Listen(appConfig.Port); err != nil {
		appLog.Fatal("server stopped", "error", err)
	}
}
