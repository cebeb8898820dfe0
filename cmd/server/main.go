// Command server runs the refrigerator inventory and inspection HTTP API.
//
// Configuration is read from CONFIG_PATH (default ./config.yaml) with
// environment variable overrides. The server shuts down gracefully on
// SIGINT or SIGTERM.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/hyessol/fridgecheck-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
