package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"stockroom/internal/config"
	"stockroom/internal/handlers"
	"stockroom/internal/ratelimit"
	"stockroom/internal/repositories"
	"stockroom/internal/routes"
	"stockroom/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "stockroom/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to DB: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close DB: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	itemRepo := repositories.NewItemRepository(db)

	// === Services ===
	var emailService services.EmailService
	if cfg.Email.SMTPHost != "" {
		emailService = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	}
	alertService := services.NewAlertService(
		emailService,
		cfg.Alerts.TelegramBotToken,
		cfg.Alerts.TelegramChatID,
	)

	authService, err := services.NewAuthService(
		userRepo,
		alertService,
		cfg.Auth.BcryptCost,
		cfg.Auth.LockThreshold,
		time.Duration(cfg.Auth.LockMinutes)*time.Minute,
	)
	if err != nil {
		log.Fatal("Failed to init auth service: ", err)
	}
	tokenService, err := services.NewTokenService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
	)
	if err != nil {
		log.Fatal("Failed to init token service: ", err)
	}
	userService := services.NewUserService(userRepo, emailService, authService)
	itemService := services.NewItemService(itemRepo)

	loginLimiter := ratelimit.New(
		cfg.Auth.RateMaxAttempts,
		time.Duration(cfg.Auth.RateWindowMinutes)*time.Minute,
	)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService, tokenService)
	itemHandler := handlers.NewItemHandler(itemService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authHandler, itemHandler, tokenService, loginLimiter)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
