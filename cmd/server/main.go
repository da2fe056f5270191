package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"applogs/internal/app"
	"applogs/internal/config"
	"applogs/internal/logger"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	lc, err := cfg.Log.LoggerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log config: %v\n", err)
		os.Exit(1)
	}

	logs, err := logger.New(lc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	logs.SetDefault()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err = app.New(app.Config{Addr: cfg.Addr}, logs).Run(ctx)
	stop()
	if err != nil {
		logs.Named("app").Error("application error", "error", err)
		logs.Close()
		os.Exit(1)
	}
	logs.Close()
}
