package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "github.com/rentdesk/backend/docs"
	expenseapp "github.com/rentdesk/backend/internal/application/expense"
	landlordapp "github.com/rentdesk/backend/internal/application/landlord"
	maintenanceapp "github.com/rentdesk/backend/internal/application/maintenance"
	notificationapp "github.com/rentdesk/backend/internal/application/notification"
	propertyapp "github.com/rentdesk/backend/internal/application/property"
	rentapp "github.com/rentdesk/backend/internal/application/rent"
	reportapp "github.com/rentdesk/backend/internal/application/report"
	tenancyapp "github.com/rentdesk/backend/internal/application/tenancy"
	"github.com/rentdesk/backend/internal/infrastructure/cache"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/rentdesk/backend/internal/infrastructure/event"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/rentdesk/backend/internal/infrastructure/persistence"
	"github.com/rentdesk/backend/internal/infrastructure/printing"
	"github.com/rentdesk/backend/internal/infrastructure/scheduler"
	"github.com/rentdesk/backend/internal/infrastructure/storage"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
	"github.com/rentdesk/backend/internal/interfaces/http/handler"
	"github.com/rentdesk/backend/internal/interfaces/http/middleware"
	"github.com/rentdesk/backend/internal/interfaces/http/router"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

//	@title			RentDesk API
//	@version		1.0
//	@description	Multi-tenant property management: units, tenants, rent and utilities.

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BusinessScope
//	@in							header
//	@name						X-Business-ID

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	ctx := context.Background()

	bootLog, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// OTLP log export tees into the main logger when enabled
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log export", zap.Error(err))
	}
	var logOpts []logger.Option
	if logProvider.IsEnabled() {
		logOpts = append(logOpts, logger.WithCore(
			telemetry.NewZapOTELCore(logProvider, cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Telemetry.LogsLevel)),
		))
	}
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}, logOpts...)
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting RentDesk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	meter := meterProvider.Meter("rentdesk")

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
		AuthToken:       cfg.Profiling.AuthToken,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if cfg.Profiling.Enabled && cfg.Profiling.SpanProfiles {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithBoundValues(cfg.Telemetry.DBLogFullSQL))
	connectCtx, cancelConnect := context.WithTimeout(ctx, 15*time.Second)
	db, err := persistence.Open(connectCtx, &cfg.Database, gormLog)
	cancelConnect()
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	dbTracing := telemetry.NewDBTracing(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	dbMetrics, err := telemetry.NewDBMetrics(meter, db.SQL(), cfg.Telemetry.DBSlowQueryThresh, log)
	if err != nil {
		log.Fatal("Failed to create database metrics", zap.Error(err))
	}
	if err := dbMetrics.RegisterCallbacks(db.DB); err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}

	// Repositories and services
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	utilityRepo := persistence.NewGormUtilityRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	leaseRepo := persistence.NewGormLeaseRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	maintenanceRepo := persistence.NewGormMaintenanceRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	landlordRepo := persistence.NewGormLandlordRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	counter := propertyapp.NewOccupancyCounter(propertyRepo, unitRepo, log)
	propertyService := propertyapp.NewPropertyService(propertyRepo, unitRepo, counter, log)
	propertyService.SetLandlordRepository(landlordRepo)
	unitService := propertyapp.NewUnitService(unitRepo, propertyRepo, utilityRepo, tenantRepo, txScope, counter, log)
	utilityService := propertyapp.NewUtilityService(utilityRepo, unitRepo)
	tenantService := tenancyapp.NewTenantService(tenantRepo, unitRepo, utilityRepo, paymentRepo, txScope, counter, log)
	leaseService := tenancyapp.NewLeaseService(leaseRepo, tenantRepo, unitRepo, txScope, log)
	leaseService.SetExpiryWindow(cfg.Billing.LeaseExpiryDays)
	paymentService := rentapp.NewPaymentService(paymentRepo, tenantRepo, unitRepo, utilityRepo, propertyRepo, txScope, log)
	maintenanceService := maintenanceapp.NewService(maintenanceRepo, unitRepo, tenantRepo, log)
	expenseService := expenseapp.NewService(expenseRepo, propertyRepo, unitRepo, log)
	landlordService := landlordapp.NewService(landlordRepo, propertyRepo, log)
	notificationService := notificationapp.NewService(notificationRepo, log)

	dashboardCache, err := cache.NewDashboardCacheFactory(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cache.WithLogger(log), cache.WithInMemoryFallback(!cfg.App.IsProduction())).Create()
	if err != nil {
		log.Fatal("Failed to create dashboard cache", zap.Error(err))
	}
	dashboardService := reportapp.NewDashboardService(persistence.NewGormDashboardRepository(db.DB), dashboardCache, cfg.Redis.DashboardTTL, log)

	// Events
	eventBus, err := event.NewInMemoryEventBus(log, event.WithMeter(meter))
	if err != nil {
		log.Fatal("Failed to create event bus", zap.Error(err))
	}
	eventBus.Subscribe(cache.NewDashboardInvalidationHandler(dashboardCache, log))
	eventBus.Subscribe(notificationapp.NewFeedHandler(notificationRepo, log))

	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:     meter,
		Logger:    log,
		Occupancy: telemetry.NewGormOccupancyProvider(db.DB),
	})
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}
	eventBus.Subscribe(businessMetrics)

	propertyService.SetEventPublisher(eventBus)
	unitService.SetEventPublisher(eventBus)
	tenantService.SetEventPublisher(eventBus)
	leaseService.SetEventPublisher(eventBus)
	paymentService.SetEventPublisher(eventBus)
	maintenanceService.SetEventPublisher(eventBus)
	expenseService.SetEventPublisher(eventBus)
	landlordService.SetEventPublisher(eventBus)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	metricsCtx, stopMetrics := context.WithCancel(ctx)
	businessMetrics.StartPeriodicCollection(metricsCtx, time.Minute)

	// Uploads
	if cfg.Storage.Enabled {
		objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := objectStorage.EnsureBucket(ctx); err != nil {
			log.Warn("Object storage bucket check failed", zap.Error(err))
		}
		unitService.SetPresigner(objectStorage)
		tenantService.SetPresigner(objectStorage)
		expenseService.SetPresigner(objectStorage)
	} else if !cfg.App.IsProduction() {
		presigner := storage.NewLocalPresigner("")
		unitService.SetPresigner(presigner)
		tenantService.SetPresigner(presigner)
		expenseService.SetPresigner(presigner)
	}

	// Receipts
	var pdfRenderer *printing.ChromedpRenderer
	if cfg.Printing.Enabled {
		pdfRenderer, err = printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Printing.Timeout,
			RemoteURL:      cfg.Printing.ChromeURL,
			NoSandbox:      cfg.Printing.NoSandbox,
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		receiptPrinter, err := printing.NewReceiptPrinter(pdfRenderer,
			printing.WithPaperSize(printing.PaperSize(cfg.Printing.PaperSize)),
			printing.WithTemplateEngine(printing.NewTemplateEngine(printing.WithCurrency(cfg.Printing.Currency))),
		)
		if err != nil {
			log.Fatal("Failed to initialize receipt printer", zap.Error(err))
		}
		paymentService.SetReceiptRenderer(receiptPrinter)
	}

	// Background jobs
	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs = scheduler.New(scheduler.Config{JobTimeout: cfg.Scheduler.JobTimeout}, scheduler.NewGormRunRecorder(db.DB), log)
		if err := scheduler.RegisterRentJobs(jobs, scheduler.RentJobs{
			Counts:  counter,
			Vacancy: unitService,
			Leases:  leaseService,
		}, scheduler.Schedules{
			ReconcileCounts: cfg.Scheduler.ReconcileSchedule,
			RefreshVacancy:  cfg.Scheduler.VacancySchedule,
			ExpireLeases:    cfg.Scheduler.LeaseSchedule,
		}); err != nil {
			log.Fatal("Failed to register scheduled jobs", zap.Error(err))
		}
		jobs.Start(ctx)
		log.Info("Scheduler started", zap.Int("jobs", len(jobs.Jobs())))
	}

	// HTTP
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := middleware.NewHTTPMetrics(registry)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.Tracing(middleware.TracingConfig{ServiceName: cfg.Telemetry.ServiceName, Enabled: cfg.Telemetry.Enabled}),
		middleware.SpanErrorMarker(),
		logger.GinMiddleware(log),
		httpMetrics.Middleware(),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	var rateLimiter *middleware.RateLimiter
	apiMiddleware := []gin.HandlerFunc{
		middleware.TracingAttributeInjector(),
		middleware.Profiling(middleware.ProfilingConfig{Enabled: cfg.Profiling.Enabled}),
	}
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(rateLimiter))
	}
	apiMiddleware = append(apiMiddleware, middleware.Timeout(cfg.HTTP.WriteTimeout))

	system := handler.NewSystemHandler(cfg.App.Name, version)
	system.AddCheck("database", db.Check)

	engine.GET("/health", system.Health)
	engine.GET("/metrics", middleware.MetricsHandler(registry))
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NewRouter(engine,
		router.WithBusinessScope(middleware.BusinessScope(middleware.DefaultBusinessScopeConfig())),
		router.WithMiddleware(apiMiddleware...)).
		Register(router.Groups(router.Handlers{
			Property:     handler.NewPropertyHandler(propertyService, unitService, tenantService),
			Unit:         handler.NewUnitHandler(unitService),
			Utility:      handler.NewUtilityHandler(utilityService),
			Tenant:       handler.NewTenantHandler(tenantService, paymentService),
			Lease:        handler.NewLeaseHandler(leaseService),
			Payment:      handler.NewPaymentHandler(paymentService),
			Maintenance:  handler.NewMaintenanceHandler(maintenanceService),
			Expense:      handler.NewExpenseHandler(expenseService),
			Landlord:     handler.NewLandlordHandler(landlordService),
			Notification: handler.NewNotificationHandler(notificationService),
			Dashboard:    handler.NewDashboardHandler(dashboardService),
			System:       system,
		})...).
		Setup()

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if rateLimiter != nil {
		rateLimiter.Stop()
	}
	if jobs != nil {
		if err := jobs.Stop(shutdownCtx); err != nil {
			log.Error("Error stopping scheduler", zap.Error(err))
		}
	}
	stopMetrics()
	businessMetrics.Stop()
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if pdfRenderer != nil {
		if err := pdfRenderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}
	if err := dbMetrics.Stop(); err != nil {
		log.Error("Error stopping database metrics", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down log provider", zap.Error(err))
	}

	log.Info("Server exited")
}
