package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardenlabs/voxelbot/internal/config"
	"github.com/ardenlabs/voxelbot/internal/logger"
	"github.com/ardenlabs/voxelbot/internal/supervisor"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sup := supervisor.New(*cfg, log)
	go readOperatorCommands(ctx, sup, log)

	if err := sup.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("supervisor exited", "error", err)
		os.Exit(1)
	}
}

func readOperatorCommands(ctx context.Context, sup *supervisor.Supervisor, log *slog.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := sup.Dispatch(line); err != nil {
			log.Warn("command failed", "command", line, "error", err)
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
