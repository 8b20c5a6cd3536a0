package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/ss-infotech2024/Event-Finder/internal/config"
	"github.com/ss-infotech2024/Event-Finder/internal/handler"
	"github.com/ss-infotech2024/Event-Finder/internal/middleware"
	"github.com/ss-infotech2024/Event-Finder/internal/repository"
	"github.com/ss-infotech2024/Event-Finder/internal/service"
	"github.com/ss-infotech2024/Event-Finder/pkg/database"
	"github.com/ss-infotech2024/Event-Finder/pkg/email"
	jwtPkg "github.com/ss-infotech2024/Event-Finder/pkg/jwt"
	"github.com/ss-infotech2024/Event-Finder/pkg/logger"
	"github.com/ss-infotech2024/Event-Finder/pkg/utils"
)

func main() {
	// Load .env; a missing file is fine in production environments.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg := config.LoadConfig()

	zapLogger, err := logger.New()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	if cfg.JWTSecret == "" {
		zapLogger.Fatal("JWT_SECRET is not set")
	}

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("database initialization failed", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// Shared infrastructure
	tokens := jwtPkg.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer)
	emailService := email.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailFromName, zapLogger)
	validator := utils.NewValidator()

	// Services
	authService := service.NewAuthService(userRepo, emailService, tokens, zapLogger)
	eventService := service.NewEventService(eventRepo, userRepo, cfg.ListPageSize, zapLogger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator, zapLogger)
	eventHandler := handler.NewEventHandler(eventService, validator, zapLogger)

	// Router
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberLogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	protected := middleware.AuthMiddleware(tokens)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", protected, authHandler.GetMe)

	events := api.Group("/events")
	events.Get("/", eventHandler.GetEvents)
	events.Get("/trending", eventHandler.GetTrendingEvents)
	events.Get("/recommended", protected, eventHandler.GetRecommendedEvents)
	events.Get("/categories", eventHandler.GetCategories)
	events.Post("/", protected, eventHandler.CreateEvent)
	events.Put("/:id", protected, eventHandler.UpdateEvent)
	events.Delete("/:id", protected, eventHandler.DeleteEvent)
	// Registered last so it doesn't shadow the named routes above.
	events.Get("/:id", eventHandler.GetEvent)

	zapLogger.Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
