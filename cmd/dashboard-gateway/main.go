package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/drivedesk-gateway/api/swagger"
	"github.com/noah-isme/drivedesk-gateway/internal/handler"
	"github.com/noah-isme/drivedesk-gateway/internal/middleware"
	"github.com/noah-isme/drivedesk-gateway/internal/repository"
	"github.com/noah-isme/drivedesk-gateway/internal/service"
	"github.com/noah-isme/drivedesk-gateway/internal/upstream"
	"github.com/noah-isme/drivedesk-gateway/pkg/cache"
	"github.com/noah-isme/drivedesk-gateway/pkg/config"
	"github.com/noah-isme/drivedesk-gateway/pkg/database"
	"github.com/noah-isme/drivedesk-gateway/pkg/export"
	"github.com/noah-isme/drivedesk-gateway/pkg/logger"
	corsmiddleware "github.com/noah-isme/drivedesk-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/drivedesk-gateway/pkg/middleware/requestid"
)

// @title DriveDesk Dashboard Gateway
// @version 1.0.0
// @description Aggregates the driving-school backend into per-manager dashboard snapshots.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()
	checks := map[string]handler.ReadinessCheck{}

	store, redisClient, err := buildSnapshotStore(ctx, cfg, metrics, logr)
	if err != nil {
		logr.Fatal("failed to init snapshot store", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	var audit *service.AuditService
	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect database", zap.Error(err))
		}
		defer db.Close() //nolint:errcheck
		if err := database.Migrate(ctx, db.DB); err != nil {
			logr.Fatal("failed to apply migrations", zap.Error(err))
		}
		checks["postgres"] = func(ctx context.Context) error { return db.PingContext(ctx) }
		audit = buildAuditService(db, cfg, logr)
		audit.Start(ctx)
		defer audit.Stop()
	}

	api := upstream.New(upstream.Config{
		BaseURL:  cfg.Upstream.BaseURL,
		Timeout:  cfg.Upstream.Timeout,
		Observer: metrics,
		Logger:   logr,
	})

	tokens := service.NewTokenService(cfg.JWT.Secret, logr)
	if !tokens.Verifies() {
		logr.Warn("JWT_SECRET not set; token signatures are not verified and snapshots are keyed per token")
	}
	aggregator := service.NewAggregatorService(service.AggregatorServiceParams{
		API:       api,
		Store:     store,
		Validator: service.NewFormValidator(validator.New()),
		Metrics:   metrics,
		Logger:    logr,
	})
	views := service.NewViewService(aggregator, aggregator.RecentSessionsLimit())
	exports := service.NewExportService(aggregator, logr, export.NewCSVExporter(), export.NewPDFExporter())

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(metrics, checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r.Group(cfg.APIPrefix), routeDeps{
		tokens:     tokens,
		aggregator: aggregator,
		views:      views,
		exports:    exports,
		audit:      audit,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("upstream", cfg.Upstream.BaseURL),
			zap.String("snapshot_store", cfg.Snapshot.Store),
			zap.Bool("audit", cfg.Audit.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

type routeDeps struct {
	tokens     *service.TokenService
	aggregator *service.AggregatorService
	views      *service.ViewService
	exports    *service.ExportService
	audit      *service.AuditService
}

func registerRoutes(api *gin.RouterGroup, deps routeDeps) {
	reference := handler.NewReferenceHandler()
	api.GET("/states", reference.States)
	api.GET("/session-types", reference.SessionTypes)

	dashboard := handler.NewDashboardHandler(deps.aggregator, deps.views)
	teachers := handler.NewTeacherHandler(deps.aggregator)
	schools := handler.NewSchoolHandler(deps.aggregator)
	sessions := handler.NewSessionHandler(deps.aggregator)
	forms := handler.NewFormHandler(deps.aggregator)
	exports := handler.NewExportHandler(deps.exports)

	secured := api.Group("/dashboard")
	secured.Use(middleware.Auth(deps.tokens))
	{
		secured.GET("", dashboard.Get)
		secured.DELETE("", dashboard.Discard)
		secured.POST("/refresh", dashboard.Refresh)
		secured.GET("/views/:tab", dashboard.View)
		secured.GET("/distribution", dashboard.Distribution)

		secured.POST("/teachers", middleware.Audit(deps.audit, "CREATE", "teacher"), teachers.Add)
		secured.DELETE("/teachers/:id", middleware.Audit(deps.audit, "DELETE", "teacher"), teachers.Remove)
		secured.PUT("/school", middleware.Audit(deps.audit, "UPDATE", "school"), schools.Update)
		secured.POST("/sessions", middleware.Audit(deps.audit, "CREATE", "session"), sessions.Schedule)

		secured.GET("/forms/:kind", forms.Get)
		secured.PATCH("/forms/:kind", forms.Patch)
		secured.DELETE("/forms/:kind", forms.Reset)

		secured.GET("/export/:dataset", exports.Download)
	}
}

func buildSnapshotStore(ctx context.Context, cfg *config.Config, metrics *service.MetricsService, logr *zap.Logger) (service.SnapshotStore, *redis.Client, error) {
	if cfg.Snapshot.Store != config.StoreRedis {
		return service.NewMemorySnapshotStore(cfg.Snapshot.TTL, metrics), nil, nil
	}
	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	repo := repository.NewCacheRepository(client, logr)
	cacheService := service.NewCacheService(repo, metrics, cfg.Snapshot.TTL, logr)
	return service.NewCacheSnapshotStore(cacheService, cfg.Snapshot.TTL), client, nil
}

func buildAuditService(db *sqlx.DB, cfg *config.Config, logr *zap.Logger) *service.AuditService {
	return service.NewAuditService(repository.NewAuditRepository(db), service.AuditServiceConfig{
		Workers:    cfg.Audit.Workers,
		MaxRetries: cfg.Audit.MaxRetries,
	}, logr)
}
