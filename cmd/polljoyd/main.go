// Command polljoyd serves the polljoy connector as a standalone gateway.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/polljoy/app/gateway"
	"github.com/dmitrymomot/polljoy/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := gateway.NewApp(ctx)
	if err != nil {
		slog.Error("failed to initialize gateway", logger.Error(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		slog.Error("gateway stopped with error", logger.Error(err))
		os.Exit(1)
	}
}
