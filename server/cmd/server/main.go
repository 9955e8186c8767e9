// Package main is the entry point for the telemetry server: the ingest API
// agents POST to, backed by Postgres, plus the trust engine and the NATS
// alert publisher.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/Vamsirusheel01/sentinel-ai/pkg/secrets"
	"github.com/Vamsirusheel01/sentinel-ai/pkg/telemetry"
	"github.com/Vamsirusheel01/sentinel-ai/server/internal/alert"
	"github.com/Vamsirusheel01/sentinel-ai/server/internal/handler"
	"github.com/Vamsirusheel01/sentinel-ai/server/internal/service"
	"github.com/Vamsirusheel01/sentinel-ai/server/internal/trust"
)

const defaultRulesPath = "configs/detection_rules.yml"

func main() {
	// ── Structured Logger ──────────────────────────────────────────────────
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// ── OpenTelemetry Tracer ───────────────────────────────────────────────
	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint != "" {
		tp, err := telemetry.InitTracer(context.Background(), "sentinel-server", otelEndpoint)
		if err != nil {
			logger.Error("failed to init OTel tracer", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
			logger.Info("OTel tracer initialized", zap.String("endpoint", otelEndpoint))
		}
	}

	// ── Secrets ────────────────────────────────────────────────────────────
	// Vault when available, environment otherwise. Lab deployments run
	// without a Vault server.
	pgURL := os.Getenv("PG_URL")
	natsURL := os.Getenv("NATS_URL")
	if vaultAddr := os.Getenv("VAULT_ADDR"); vaultAddr != "" {
		vaultToken := os.Getenv("VAULT_TOKEN")
		secretPath := os.Getenv("VAULT_SECRET_PATH")
		if secretPath == "" {
			secretPath = "secret/data/sentinel/server"
		}

		manager, err := secrets.NewManager(vaultAddr, vaultToken)
		if err != nil {
			logger.Fatal("Vault connection failed", zap.Error(err))
		}
		data, err := manager.ReadKV2(secretPath)
		if err != nil {
			logger.Fatal("failed to load secrets from Vault", zap.Error(err))
		}
		pgURL = secrets.StringOr(data, "PG_URL", pgURL)
		natsURL = secrets.StringOr(data, "NATS_URL", natsURL)
		logger.Info("secrets loaded from Vault", zap.String("path", secretPath))
	}
	if pgURL == "" {
		logger.Fatal("PG_URL is not set")
	}

	// ── Postgres ───────────────────────────────────────────────────────────
	poolCfg, err := pgxpool.ParseConfig(pgURL)
	if err != nil {
		logger.Fatal("failed to parse PG_URL", zap.Error(err))
	}
	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal("Postgres connection failed", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("Postgres ping failed", zap.Error(err))
	}
	logger.Info("Postgres connected")

	// ── NATS JetStream (optional) ──────────────────────────────────────────
	var alerts *alert.Publisher
	if natsURL != "" {
		natsClient, err := alert.NewClient(natsURL, logger)
		if err != nil {
			logger.Fatal("NATS connection failed", zap.Error(err))
		}
		defer natsClient.Close()

		if err := natsClient.ProvisionStreams(); err != nil {
			logger.Fatal("NATS stream provisioning failed", zap.Error(err))
		}
		alerts = alert.NewPublisher(natsClient, logger)
		logger.Info("NATS JetStream ready")
	} else {
		logger.Info("NATS_URL not set, alert publishing disabled")
	}

	// ── Trust Engine ───────────────────────────────────────────────────────
	rulesPath := os.Getenv("RULES_PATH")
	if rulesPath == "" {
		rulesPath = defaultRulesPath
	}
	rules := trust.LoadRules(rulesPath, logger)
	engine := trust.NewEngine(rules, trust.ConfigFromEnv(), clockwork.NewRealClock(), logger)

	// ── Services ───────────────────────────────────────────────────────────
	store := service.NewStore(pool)
	ingest := service.NewIngestService(store, engine, alerts, clockwork.NewRealClock(), logger)
	reader := service.NewTelemetryService(store)

	// ── HTTP Server ────────────────────────────────────────────────────────
	e := echo.New()
	e.HideBanner = true

	e.Use(otelecho.Middleware("sentinel-server"))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("HTTP request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	handler.NewTelemetryHandler(ingest, reader, logger).Register(e)

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":5000"
	}
	go func() {
		logger.Info("sentinel-server listening", zap.String("addr", listenAddr))
		if err := e.Start(listenAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failure", zap.Error(err))
		}
	}()

	// ── Graceful Shutdown ──────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Echo shutdown error", zap.Error(err))
	}
	logger.Info("sentinel-server shut down cleanly")
}
