package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/odyssey-erp/analytics-dashboard/internal/analyticsapi"
	"github.com/odyssey-erp/analytics-dashboard/internal/app"
	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard"
	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard/export"
	dashboardhttp "github.com/odyssey-erp/analytics-dashboard/internal/dashboard/http"
	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard/svg"
	"github.com/odyssey-erp/analytics-dashboard/internal/dashboard/ui"
	"github.com/odyssey-erp/analytics-dashboard/internal/observability"
	"github.com/odyssey-erp/analytics-dashboard/internal/platform/cache"
	"github.com/odyssey-erp/analytics-dashboard/internal/platform/httpx"
	"github.com/odyssey-erp/analytics-dashboard/internal/shared"
	"github.com/odyssey-erp/analytics-dashboard/internal/view"
	"github.com/redis/go-redis/v9"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "dashboard_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}
	formatter, err := ui.NewFormatter(cfg.DashboardLocale)
	if err != nil {
		logger.Error("dashboard locale", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	apiClient := analyticsapi.New(cfg.AnalyticsAPIURL, analyticsapi.WithObserver(metrics))
	if cfg.SameOriginAPI() {
		logger.Info("analytics api resolves against the page origin")
	}

	store := dashboard.NewRedisStore(redisClient, cfg.SessionTTL)
	loader := dashboard.NewLoader(store, cfg.Variant(), logger)
	dashboardHandler := dashboardhttp.NewHandler(
		logger,
		store,
		loader,
		dashboardhttp.OriginSource{Client: apiClient},
		ui.NewBuilder(formatter, svg.Renderer{}),
		templates,
		csrfManager,
	).WithMetrics(metrics).WithLoadPolicy(cfg.DashboardLoadTimeout, cfg.DashboardStaleLoading)

	checks := readinessChecks(redisClient)
	pdfExporter := export.NewPDFExporter(cfg.GotenbergURL)
	if pdfExporter.Enabled() {
		dashboardHandler.WithPDF(pdfExporter)
		pingCtx, cancelPing := context.WithTimeout(ctx, 3*time.Second)
		if err := pdfExporter.Ping(pingCtx); err != nil {
			logger.Warn("gotenberg unavailable, pdf export will fail until it is reachable", slog.String("url", cfg.GotenbergURL), slog.Any("error", err))
		}
		cancelPing()
	}

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		DashboardHandler: dashboardHandler,
		ReadinessChecks:  checks,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server",
			slog.String("addr", cfg.AppAddr),
			slog.String("variant", string(loader.Variant())),
			slog.Duration("load_timeout", cfg.DashboardLoadTimeout),
			slog.String("locale", formatter.Locale()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

// readinessChecks lists the dependencies /readyz waits for. Gotenberg is left
// out because PDF export is optional.
func readinessChecks(redisClient redis.Cmdable) []httpx.Check {
	return []httpx.Check{{Name: "redis", Ping: cache.Ping(redisClient)}}
}
