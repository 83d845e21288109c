// Command atlas runs the analysis engine from the terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"atlas/internal/config"
	"atlas/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.Configure(logger.Config{Level: cfg.Log.Level, Output: os.Stderr, Service: cfg.Log.Service, Location: cfg.Location})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg, openCore).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
