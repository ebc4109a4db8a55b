package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kingzyphor/portfolio-api/config"
	"github.com/kingzyphor/portfolio-api/internal/cache"
	"github.com/kingzyphor/portfolio-api/internal/handlers"
	"github.com/kingzyphor/portfolio-api/internal/middleware"
	"github.com/kingzyphor/portfolio-api/internal/repository"
	"github.com/kingzyphor/portfolio-api/internal/services"
	"github.com/kingzyphor/portfolio-api/pkg/circuitbreaker"
	"github.com/kingzyphor/portfolio-api/pkg/email"
	"github.com/kingzyphor/portfolio-api/pkg/logger"
	"github.com/kingzyphor/portfolio-api/pkg/metrics"
	"github.com/kingzyphor/portfolio-api/pkg/profiling"
	"github.com/kingzyphor/portfolio-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// contactBodyLimit caps contact submissions; the largest valid payload is well under it
const contactBodyLimit = 100 * 1024

// registerAPIRoutes registers the public API under /api
func registerAPIRoutes(
	api *gin.RouterGroup,
	healthHandler *handlers.HealthHandler,
	contactHandler *handlers.ContactHandler,
	contentHandler *handlers.ContentHandler,
) {
	api.GET("/healthcheck", healthHandler.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api.POST("/contact", middleware.BodySizeLimitMiddleware(contactBodyLimit), contactHandler.SendMessage)

	content := api.Group("/content")
	content.GET("", contentHandler.GetSite)
	content.GET("/navigation", contentHandler.GetNavigation)
	content.GET("/skills", contentHandler.GetSkills)
	content.GET("/links", contentHandler.GetLinks)
	content.GET("/photos", contentHandler.GetPhotos)
	content.GET("/photos/:slug", contentHandler.GetPhoto)
}

// newEmailSender picks the Resend sender behind a circuit breaker, or a log-only sender in development without an API key
func newEmailSender(cfg *config.Config) (email.Sender, error) {
	if cfg.Email.ResendAPIKey == "" && cfg.IsDevelopment() {
		logger.Warn("RESEND_API_KEY not set: contact messages will only be logged")
		return email.NewLogSender(), nil
	}

	resendSender, err := email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.ResendBaseURL, cfg.Email.Timeout())
	if err != nil {
		return nil, err
	}
	return email.NewBreakerSender(resendSender, circuitbreaker.DefaultConfig("resend")), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
		MaxAgeDays:  cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting portfolio API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	tracerShutdown, err := tracing.InitTracer(cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Error("Failed to start profiler, continuing without it", zap.Error(err))
	} else {
		defer stopProfiler()
	}

	metrics.Init(cfg.Observability.ServiceName)
	metrics.RecordInfrastructureMetrics()

	// Site content is loaded before accepting requests so the healthcheck reflects it
	contentSource := repository.NewYAMLContentDataSource(cfg.Content.File)
	contentCache := cache.NewContentCache(contentSource, cfg.Content.CacheTTLSeconds)
	initCtx, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
	if err := contentCache.Initialize(initCtx); err != nil {
		cancelInit()
		logger.Fatal("Failed to load site content", zap.Error(err), zap.String("file", cfg.Content.File))
	}
	cancelInit()

	sender, err := newEmailSender(cfg)
	if err != nil {
		logger.Fatal("Failed to create email sender", zap.Error(err))
	}

	contactService := services.NewContactService(sender, cfg.Email)
	contentService := services.NewContentService(contentCache)

	healthHandler := handlers.NewHealthHandler(contentCache.IsReady)
	contactHandler := handlers.NewContactHandler(contactService)
	contentHandler := handlers.NewContentHandler(contentService)

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	registerAPIRoutes(router.Group("/api"), healthHandler, contactHandler, contentHandler)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		// must outlast the email provider timeout
		WriteTimeout:   cfg.Email.Timeout() + 15*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
