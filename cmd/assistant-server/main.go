// cmd/assistant-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"carbon-assistant/internal/assistant"
	"carbon-assistant/internal/assistant/contextstore"
	"carbon-assistant/internal/assistant/entity"
	"carbon-assistant/internal/assistant/intent"
	"carbon-assistant/internal/assistant/knowledge"
	"carbon-assistant/internal/assistant/respond"
	"carbon-assistant/internal/carbon"
	"carbon-assistant/internal/common/config"
	"carbon-assistant/internal/common/database"
	"carbon-assistant/internal/common/logger"
	"carbon-assistant/internal/common/observability"
	"carbon-assistant/internal/models"
	"carbon-assistant/internal/server"
	"carbon-assistant/internal/storage/history"
	"carbon-assistant/pkg/schemas"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")

	zapLog.Info("Starting assistant server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New("assistant-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init session store ---
	sessionTTL := time.Duration(cfg.Assistant.Session.TTL) * time.Millisecond
	var store contextstore.Store

	switch cfg.Assistant.Session.Backend {
	case "redis":
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")

		store = contextstore.NewRedisStore(redisClient, sessionTTL, log)

	default:
		memStore := contextstore.NewMemoryStore(sessionTTL, cfg.Assistant.Session.MaxSessions)
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				if purged := memStore.PurgeExpired(); purged > 0 {
					log.Debug("purged expired sessions", map[string]interface{}{
						"count": purged,
					})
				}
			}
		}()
		store = memStore
		zapLog.Info("In-memory session store initialized",
			zap.Int("maxSessions", cfg.Assistant.Session.MaxSessions))
	}

	// --- Init PostgreSQL history with retry (optional) ---
	var historyRepo models.HistoryRepository
	var checks []server.HealthCheck

	if cfg.Database.Postgres.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			// Test the connection with context
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		pgStore := history.NewPostgresStore(pg, log)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("history schema init failed", zap.Error(err))
		}
		historyRepo = pgStore
		checks = append(checks, server.HealthCheck{Name: "postgres", Check: pg.Ping})
	} else {
		zapLog.Info("PostgreSQL disabled, interaction history endpoints answer 501")
	}

	// --- Build the intent classifier ---
	ruleset := intent.DefaultRuleset()
	if cfg.Assistant.RulesetPath != "" {
		ruleset, err = intent.LoadRuleset(cfg.Assistant.RulesetPath)
		if err != nil {
			zapLog.Fatal("ruleset load failed",
				zap.Error(err), zap.String("path", cfg.Assistant.RulesetPath))
		}
	}
	classifier, err := intent.NewClassifier(ruleset)
	if err != nil {
		zapLog.Fatal("classifier build failed", zap.Error(err))
	}
	zapLog.Info("Intent classifier ready",
		zap.String("version", classifier.Version()), zap.Int("rules", len(ruleset.Rules)))

	// --- Load the request schema registry ---
	registry := schemas.DefaultRegistry()
	if cfg.Assistant.RegistryPath != "" {
		registry, err = schemas.LoadRegistry(cfg.Assistant.RegistryPath)
		if err != nil {
			zapLog.Fatal("schema registry load failed",
				zap.Error(err), zap.String("path", cfg.Assistant.RegistryPath))
		}
	}

	// --- Assemble the assistant pipeline ---
	kb := knowledge.NewBase()
	engine := carbon.NewEngine()
	bot := assistant.New(
		classifier,
		entity.NewExtractor(),
		store,
		respond.NewResponder(kb, engine),
		log,
		obs,
	)

	// --- Hot ruleset reload on SIGHUP ---
	reloadCh := make(chan os.Signal, 1)
	signal.Notify(reloadCh, syscall.SIGHUP)
	go func() {
		for range reloadCh {
			if cfg.Assistant.RulesetPath == "" {
				log.Warn("SIGHUP received but no ruleset path is configured", nil)
				continue
			}
			rs, err := intent.LoadRuleset(cfg.Assistant.RulesetPath)
			if err != nil {
				log.WithError(err).Error("ruleset reload failed, keeping current version", map[string]interface{}{
					"path": cfg.Assistant.RulesetPath,
				})
				continue
			}
			next, err := bot.Classifier().Retrain(rs)
			if err != nil {
				log.WithError(err).Error("retrain failed, keeping current version", nil)
				continue
			}
			bot.Swap(next)
			log.Info("classifier retrained", map[string]interface{}{
				"version": next.Version(),
			})
		}
	}()

	// --- HTTP Server ---
	srv := server.NewServer(cfg.Server, bot, engine, kb, historyRepo, registry, checks, log)
	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", cfg.Server.Addr()))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Assistant server stopped gracefully")
}
