package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ledgerapp "github.com/fluxo/backend/internal/application/ledger"
	reportingapp "github.com/fluxo/backend/internal/application/reporting"
	"github.com/fluxo/backend/internal/infrastructure/ai"
	"github.com/fluxo/backend/internal/infrastructure/cache"
	"github.com/fluxo/backend/internal/infrastructure/config"
	"github.com/fluxo/backend/internal/infrastructure/logger"
	"github.com/fluxo/backend/internal/infrastructure/persistence"
	"github.com/fluxo/backend/internal/interfaces/http/handler"
	"github.com/fluxo/backend/internal/interfaces/http/middleware"
	"github.com/fluxo/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting fluxo backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	if cfg.Telemetry.Enabled {
		if err := db.EnableTracing(cfg.Database.DBName); err != nil {
			log.Fatal("failed to enable database tracing", zap.Error(err))
		}
	}

	reportCache, err := cache.NewReportCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	).CreateCache()
	if err != nil {
		log.Fatal("failed to initialize report cache", zap.Error(err))
	}
	defer func() {
		if err := reportCache.Close(); err != nil {
			log.Error("error closing report cache", zap.Error(err))
		}
	}()

	// Repositories
	recordRepo := persistence.NewGormRecordRepository(db.DB)
	chartRepo := persistence.NewGormChartOfAccountRepository(db.DB)
	revenueTypeRepo := persistence.NewGormRevenueTypeRepository(db.DB)

	// Application services
	recordService := ledgerapp.NewRecordService(recordRepo, chartRepo)
	chartService := ledgerapp.NewChartService(chartRepo, recordRepo)
	revenueTypeService := ledgerapp.NewRevenueTypeService(revenueTypeRepo)
	importService := ledgerapp.NewImportService(recordRepo, chartRepo)
	reportService := reportingapp.NewReportService(
		recordRepo, chartRepo, revenueTypeRepo, reportCache, cfg.Report, log)

	var completer reportingapp.TextCompleter
	if cfg.Insight.Enabled {
		client, err := ai.NewClient(cfg.Insight)
		if err != nil {
			log.Fatal("failed to initialize insight client", zap.Error(err))
		}
		completer = client
		log.Info("insight generation enabled", zap.String("model", cfg.Insight.Model))
	}
	insightService := reportingapp.NewInsightService(reportService, completer, log)

	// HTTP engine
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
		engine.Use(middleware.TracingAttributes())
	}
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORS(corsConfig))

	router.New(engine).Register(
		handler.NewRecordHandler(recordService, reportService),
		handler.NewChartHandler(chartService),
		handler.NewRevenueTypeHandler(revenueTypeService),
		handler.NewReportHandler(reportService, insightService),
		handler.NewImportHandler(importService, reportService),
		handler.NewSystemHandler(version, db),
	).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}
	log.Info("server exited gracefully")
}
