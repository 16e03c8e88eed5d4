package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"reviewhub/database"
	"reviewhub/internal/api/handler"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"
	"reviewhub/internal/config"
	"reviewhub/internal/mailer"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	codeRepo := repository.NewCodeRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPTimeout, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPSender, cfg.SMTPRetries)
	authService := service.NewAuthService(logger, userRepo, codeRepo, mail, cfg)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo, titleRepo)
	userService := service.NewUserService(userRepo)

	router := setupRouter(cfg, logger, authService, userRepo,
		handler.NewAuthHandler(authService),
		handler.NewTitleHandler(titleService),
		handler.NewCategoryHandler(categoryService),
		handler.NewGenreHandler(genreService),
		handler.NewReviewHandler(reviewService),
		handler.NewCommentHandler(commentService),
		handler.NewUserHandler(userService),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		logger.Info("shutting down server")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(timeoutCtx)
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.GoEnv)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	if err := <-shutdownErr; err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}

func setupRouter(
	cfg *config.Config,
	logger *slog.Logger,
	authService service.AuthService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	titleHandler *handler.TitleHandler,
	categoryHandler *handler.CategoryHandler,
	genreHandler *handler.GenreHandler,
	reviewHandler *handler.ReviewHandler,
	commentHandler *handler.CommentHandler,
	userHandler *handler.UserHandler,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.LimiterEnabled {
		router.Use(middleware.RateLimit(cfg.LimiterRPS, cfg.LimiterBurst))
	}
	router.Use(middleware.Authenticate(authService, userRepo))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "available", "env": cfg.GoEnv})
	})

	v1 := router.Group("/api/v1")

	// Registration handshake, throttled per IP when redis is configured.
	var authMW []gin.HandlerFunc
	if cfg.RedisURL != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisURL,
			Password: cfg.RedisPassword,
		})
		authMW = append(authMW, middleware.AuthThrottle(rdb, logger, cfg.AuthThrottleWindow, cfg.AuthThrottleLimit))
	}
	authHandler.RegisterRoutes(v1, authMW...)

	// Catalogue: reads are public, writes are for superusers/admins.
	catalogue := v1.Group("")
	catalogue.Use(middleware.SuperuserOrReadOnly())
	{
		titleHandler.RegisterRoutes(catalogue)
		categoryHandler.RegisterRoutes(catalogue)
		genreHandler.RegisterRoutes(catalogue)
	}

	// User content: reads are public, writes need authentication; author
	// and manager checks happen per object inside the handlers.
	content := v1.Group("")
	content.Use(middleware.AuthenticatedOrReadOnly())
	{
		reviewHandler.RegisterRoutes(content)
		commentHandler.RegisterRoutes(content)
	}

	// User administration and the self-profile alias.
	userHandler.RegisterRoutes(v1)

	return router
}
