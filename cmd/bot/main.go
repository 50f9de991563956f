// Command bot runs the work-log Telegram bot: webhook server, ingestion
// pipeline, and calendar browsing.
//
// Configuration comes from CONFIG_PATH (YAML) and environment variables.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"worklogbot/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
