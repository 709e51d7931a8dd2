package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/vovakirdan/gridspace-server/internal/app"
	"github.com/vovakirdan/gridspace-server/internal/config"
	"github.com/vovakirdan/gridspace-server/internal/log"
)

func main() {
	var (
		configPath string
		addr       string
		logLevel   string
	)

	flag.StringVar(&configPath, "config", "", "path to config file (defaults to ./config.yaml)")
	flag.StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	flag.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides config)")
	flag.Parse()

	bootLogger := log.New("info")

	cfg, resolvedPath, err := config.Load(bootLogger, configPath)
	if err != nil {
		bootLogger.Fatal().Err(err).Str("path", resolvedPath).Msg("failed to load config")
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger := log.New(cfg.LogLevel)
	logger.Info().Str("config", resolvedPath).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(&cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize application")
	}

	logger.Info().Str("addr", cfg.Addr).Msg("starting gridspace server")
	if err := application.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
	logger.Info().Msg("server stopped")
}
