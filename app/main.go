package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anchordtai/Cooperative-Management-Software/config"
	"github.com/anchordtai/Cooperative-Management-Software/delivery"
	"github.com/anchordtai/Cooperative-Management-Software/middleware"
	"github.com/anchordtai/Cooperative-Management-Software/repository"
	"github.com/anchordtai/Cooperative-Management-Software/service"
	"github.com/anchordtai/Cooperative-Management-Software/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg(".env file not found, using system environment variables")
	}

	utils.InitLogger()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.RegisterCustomValidations(v)
	}

	db, err := config.BootDB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to boot database")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET not set")
	}
	if len(jwtSecret) < 32 {
		log.Fatal().Msg("JWT_SECRET must be at least 32 characters. Generate one with: openssl rand -base64 32")
	}

	// Rate limiting is optional: without Redis the endpoints run unlimited.
	var limiter *middleware.RateLimiter
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient, err := config.InitRedisDB(redisAddr, os.Getenv("REDIS_PASSWORD"), 0)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		limiter = middleware.NewRateLimiter(redisClient)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, rate limiting disabled")
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	userRepo := repository.NewUserRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	reportRepo := repository.NewReportRepository(db)

	mailer := utils.NewSMTPMailerFromEnv()
	smsSender := utils.NewSMSSenderFromEnv()

	authService := service.NewAuthService(userRepo, mailer, smsSender, jwtSecret, frontendURL)
	memberService := service.NewMemberService(memberRepo)
	loanService := service.NewLoanService(loanRepo, memberRepo, settingsRepo)
	transactionService := service.NewTransactionService(transactionRepo, memberRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	reportService := service.NewReportService(reportRepo)

	if os.Getenv("APP_ENV") != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	app := gin.New()
	config.InitMiddleware(app)

	jwtManager := authService.GetAccessTokenManager()
	delivery.NewAuthHandler(app, authService, limiter)
	delivery.NewMemberHandler(app, memberService, jwtManager)
	delivery.NewFinancialHandler(app, transactionService, loanService, jwtManager)
	delivery.NewSettingsHandler(app, settingsService, jwtManager)
	delivery.NewReportHandler(app, reportService, jwtManager)

	app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:           ":" + port,
		Handler:        app,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited gracefully")
}
