package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"worklogbot/internal/adapter/llm"
	"worklogbot/internal/adapter/notion"
	"worklogbot/internal/adapter/postgres"
	"worklogbot/internal/adapter/postgres/daylog"
	"worklogbot/internal/adapter/speech"
	"worklogbot/internal/adapter/telegram"
	"worklogbot/internal/config"
	"worklogbot/internal/ratelimit"
	"worklogbot/internal/service/browse"
	"worklogbot/internal/service/ingest"
	"worklogbot/internal/transport/middleware"
	"worklogbot/internal/transport/webhook"
)

// Run is the application entry point. It loads configuration, wires the
// adapters and services, and serves the Telegram webhook until ctx is
// canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	tg, err := telegram.New(cfg.Telegram)
	if err != nil {
		return fmt.Errorf("connect to telegram: %w", err)
	}

	dayLogs := daylog.New(pool)
	ingestSvc := ingest.NewService(
		llm.New(cfg.LLM),
		speech.New(cfg.Speech),
		dayLogs,
		notion.New(cfg.Notion),
		cfg.Ingest,
		logger,
	)
	browseSvc := browse.NewService(dayLogs)
	limiter := ratelimit.New(cfg.RateLimit.Interval, cfg.RateLimit.TTL)

	handler := webhook.NewHandler(
		tg, ingestSvc, browseSvc, limiter,
		cfg.Telegram, cfg.Ingest, logger,
	)
	health := webhook.NewHealthHandler(pool, BuildVersion())

	mux := http.NewServeMux()
	mux.Handle("POST "+cfg.Telegram.WebhookPath, handler)
	mux.HandleFunc("GET /health/live", health.Live)
	mux.HandleFunc("GET /health/ready", health.Ready)

	chain := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      chain(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("webhook server listening",
			slog.String("addr", srv.Addr),
			slog.String("path", cfg.Telegram.WebhookPath),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("webhook server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown webhook server: %w", err)
	}

	return nil
}
