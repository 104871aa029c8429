package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/rentalops/backend/docs"
	revenueapp "github.com/rentalops/backend/internal/application/revenue"
	"github.com/rentalops/backend/internal/domain/shared"
	"github.com/rentalops/backend/internal/infrastructure/auth"
	"github.com/rentalops/backend/internal/infrastructure/cache"
	"github.com/rentalops/backend/internal/infrastructure/config"
	csvexport "github.com/rentalops/backend/internal/infrastructure/export"
	"github.com/rentalops/backend/internal/infrastructure/logger"
	"github.com/rentalops/backend/internal/infrastructure/persistence"
	"github.com/rentalops/backend/internal/infrastructure/scheduler"
	"github.com/rentalops/backend/internal/infrastructure/storage"
	"github.com/rentalops/backend/internal/infrastructure/telemetry"
	"github.com/rentalops/backend/internal/interfaces/http/handler"
	"github.com/rentalops/backend/internal/interfaces/http/middleware"
	"github.com/rentalops/backend/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

//	@title			RentalOps Revenue API
//	@version		1.0
//	@description	Revenue split engine for vacation rental operators: commission settings, booking breakdowns, stakeholder earnings and payouts.

//	@contact.name	API Support
//	@contact.url	https://github.com/rentalops/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const serviceVersion = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// Telemetry needs a logger; the logger is rebuilt once the OTLP log bridge exists.
	providers, err := telemetry.Setup(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	if providers.Logs.IsEnabled() {
		log, err = logger.New(logCfg, providers.Logs.Core(logger.ParseLevel(cfg.Log.Level)))
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting RentalOps revenue service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Bool("telemetry", cfg.Telemetry.Enabled),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	// Duplicate payout periods and staff wages surface as domain errors.
	gormLog := logger.NewGormLogger(log, gormLogLevel,
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithExpectedErrors(persistence.IsUniqueViolation),
	)

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.NewDBTracer(cfg.Telemetry, log).Register(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Initialize repositories
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	settingsRepo := persistence.NewGormCommissionSettingsRepository(db.DB)
	ledgerRepo := persistence.NewGormCommissionLedgerRepository(db.DB)
	staffRepo := persistence.NewGormStaffWageRepository(db.DB)
	payoutRepo := persistence.NewGormPayoutRepository(db.DB)
	directory := persistence.NewGormStakeholderDirectory(db.DB)

	// Idempotency-Key support on payout writes
	var idempotencyStore shared.IdempotencyStore
	if cfg.Idempotency.Enabled {
		factory := cache.NewIdempotencyStoreFactory(cfg.Redis,
			cache.WithLogger(log),
			cache.WithInMemoryFallback(!cfg.IsProduction()),
		)
		idempotencyStore, err = factory.CreateStore(context.Background())
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}
		defer func() {
			if err := idempotencyStore.Close(); err != nil {
				log.Error("Error closing idempotency store", zap.Error(err))
			}
		}()
	}

	// Report archive storage. Without it the archive endpoint answers 503.
	var archiveStore revenueapp.ObjectStore
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3ObjectStorage(context.Background(), &cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Store.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to prepare report bucket", zap.Error(err), zap.String("bucket", s3Store.Bucket()))
		}
		archiveStore = s3Store
		log.Info("Report archive storage enabled", zap.String("bucket", s3Store.Bucket()))
	}

	csvWriter := csvexport.NewWriter(
		csvexport.WithDelimiter([]rune(cfg.Revenue.ExportDelimiter)[0]),
		csvexport.WithBOM(cfg.Revenue.ExportBOM),
	)

	// Initialize application services
	metrics := providers.Revenue
	resolver := revenueapp.NewConfigurationResolver(settingsRepo, log)
	defaultsLoader := revenueapp.NewDefaultsLoader(propertyRepo, resolver, log)
	breakdownService := revenueapp.NewBreakdownService(bookingRepo, defaultsLoader, resolver,
		decimal.NewFromFloat(cfg.Revenue.DefaultPlatformFeePct), metrics, log)
	settingsService := revenueapp.NewSettingsService(settingsRepo, propertyRepo, bookingRepo, staffRepo, resolver, defaultsLoader, log)
	aggregationService := revenueapp.NewAggregationService(breakdownService, ledgerRepo, staffRepo, propertyRepo, directory, payoutRepo, metrics, log)
	payoutService := revenueapp.NewPayoutService(payoutRepo, idempotencyStore, shared.IdempotencyConfig{
		TTL:     cfg.Idempotency.TTL,
		Enabled: cfg.Idempotency.Enabled,
	}, metrics, log)
	ledgerService := revenueapp.NewLedgerPostingService(breakdownService, ledgerRepo, metrics, log)
	exportService := revenueapp.NewExportService(aggregationService, csvWriter, archiveStore,
		cfg.Revenue.ArchivePrefix, cfg.Revenue.ArchiveURLExpiry, metrics, log)

	// Nightly commission posting
	var postingScheduler *scheduler.Scheduler
	var postingTrigger *scheduler.CronTrigger
	if cfg.Scheduler.Enabled {
		postingScheduler = scheduler.NewScheduler(scheduler.Config{
			Workers:       cfg.Scheduler.Workers,
			JobTimeout:    cfg.Scheduler.JobTimeout,
			RetryAttempts: cfg.Scheduler.RetryAttempts,
			RetryDelay:    cfg.Scheduler.RetryDelay,
		}, scheduler.NewPostingExecutor(ledgerService, log), log)
		postingTrigger = scheduler.NewCronTrigger(scheduler.CronTriggerConfig{
			Hour:          cfg.Scheduler.PostingHour,
			Minute:        cfg.Scheduler.PostingMinute,
			LookbackDays:  cfg.Scheduler.LookbackDays,
			CheckInterval: cfg.Scheduler.CheckInterval,
		}, postingScheduler, propertyRepo, log)

		if err := postingScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start posting scheduler", zap.Error(err))
		}
		if err := postingTrigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start posting trigger", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize handlers
	revenueHandler := handler.NewRevenueHandler(handler.RevenueHandlerDeps{
		Settings:  settingsService,
		Breakdown: breakdownService,
		Earnings:  aggregationService,
		Payouts:   payoutService,
		Ledger:    ledgerService,
		Exports:   exportService,
	})
	systemHandler := handler.NewSystemHandler(cfg.App.Name, serviceVersion, db)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order matters: the request ID must exist before logging and tracing,
	// and spans must be open before the handlers mark errors on them.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled {
		engine.Use(middleware.HTTPMetrics(providers.Meter.Meter(telemetry.TracerName)))
	}
	engine.Use(middleware.Profiling(cfg.Profiling.Enabled))
	engine.Use(middleware.Secure())

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, cfg.HTTP.RateLimitBurst)
		defer rateLimiter.Stop()
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(middleware.SwaggerConfig{
				Enabled:    cfg.Swagger.Enabled,
				AllowedIPs: cfg.Swagger.AllowedIPs,
			}),
			ginSwagger.WrapHandler(swaggerFiles.Handler),
		)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	publicPaths := []string{
		r.BasePath() + "/system/ping",
		r.BasePath() + "/system/info",
	}
	development := !cfg.IsProduction()
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths:  publicPaths,
		Optional:   development,
		Logger:     log,
	}))
	r.Use(middleware.Organization(middleware.OrganizationConfig{
		HeaderEnabled:         development,
		DefaultOrganizationID: cfg.App.DefaultOrganizationID,
		SkipPaths:             publicPaths,
		Logger:                log,
	}))

	r.Register(router.RevenueRoutes(revenueHandler, middleware.PermissionConfig{
		Logger:  log,
		Enforce: cfg.IsProduction(),
	}))
	r.Register(router.SystemRoutes(systemHandler))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	if postingTrigger != nil {
		if err := postingTrigger.Stop(ctx); err != nil {
			log.Warn("Posting trigger stop error", zap.Error(err))
		}
		if err := postingScheduler.Stop(ctx); err != nil {
			log.Warn("Posting scheduler stop error", zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}
