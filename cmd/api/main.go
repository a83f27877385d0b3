package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/SakethSumanBathini/scam-shield-api/internal/actor"
	"github.com/SakethSumanBathini/scam-shield-api/internal/analytics"
	"github.com/SakethSumanBathini/scam-shield-api/internal/api/router"
	appconfig "github.com/SakethSumanBathini/scam-shield-api/internal/config"
	"github.com/SakethSumanBathini/scam-shield-api/internal/conversation"
	"github.com/SakethSumanBathini/scam-shield-api/internal/honeypot"
	"github.com/SakethSumanBathini/scam-shield-api/internal/http/handlers"
	"github.com/SakethSumanBathini/scam-shield-api/internal/intel"
	"github.com/SakethSumanBathini/scam-shield-api/internal/observability/metrics"
	"github.com/SakethSumanBathini/scam-shield-api/internal/report"
	"github.com/SakethSumanBathini/scam-shield-api/internal/session"
	"github.com/SakethSumanBathini/scam-shield-api/pkg/logging"
)

// idleSweepInterval is how often expired sessions are closed out.
const idleSweepInterval = time.Minute

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting scam-shield API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Optional session archive backed by Redis
	var archive *session.Archive
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(opts)
		archive = session.NewArchive(redisClient, nil)
		logger.Info("session archive enabled", "addr", cfg.RedisAddr)
	}

	// Optional Gemini reply generator. Without it the personas fall
	// back to their scripted phrase banks.
	var llm conversation.LLMClient
	var geminiClient *conversation.GeminiLLMClient
	if cfg.GeminiAPIKey != "" {
		client, err := conversation.NewGeminiLLMClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to initialize Gemini client", "error", err)
			os.Exit(1)
		}
		geminiClient = client
		llm = client
		logger.Info("reply generator enabled", "model", cfg.GeminiModelID)
	} else {
		logger.Warn("GEMINI_API_KEY not set, using rule-based replies")
	}

	// Initialize services
	honeypotMetrics := metrics.NewHoneypotMetrics(nil)
	engine := conversation.NewEngine(llm, cfg.GeneratorTimeout, logger, nil)
	dispatcher := report.NewDispatcher(cfg.ReportCallbackURL, cfg.ReportTimeout, logger)
	svc := honeypot.NewService(
		session.NewStore(),
		engine,
		dispatcher,
		actor.NewProfiler(nil),
		intel.NewLog(nil),
		analytics.New(),
		honeypot.Options{
			MaxExchanges:   cfg.MaxExchanges,
			SessionTimeout: cfg.SessionTimeout,
			Archive:        archive,
			Metrics:        honeypotMetrics,
			Logger:         logger,
		},
	)

	// Initialize handlers
	honeypotHandler := handlers.NewHoneypotHandler(svc, logger, llm != nil)

	// Setup router
	routerCfg := &router.Config{
		Honeypot:       honeypotHandler,
		MetricsHandler: promhttp.Handler(),
		Logger:         logger,
		APIKey:         cfg.APIKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Close out sessions that went quiet
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(idleSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if n := svc.ExpireIdle(sweepCtx); n > 0 {
					logger.Info("expired idle sessions", "count", n)
				}
			}
		}
	}()

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	stopSweep()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Let in-flight scam reports finish before exiting
	svc.Wait()
	if geminiClient != nil {
		_ = geminiClient.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
