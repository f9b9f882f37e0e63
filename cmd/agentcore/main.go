// Command agentcore runs a standalone dispatch runtime from a YAML
// configuration file. It registers a generic echo agent type, applies the
// configured subscriptions, and serves until interrupted.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agentcore-dev/agentcore"
	"github.com/agentcore-dev/agentcore/runtime"
)

// Version information (set via ldflags)
var Version = "dev"

var (
	configFile  = flag.String("config", getEnv("CONFIG_FILE", "agentcore.yaml"), "Runtime configuration file")
	logLevel    = flag.String("log-level", getEnv("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	stopTimeout = flag.Duration("stop-timeout", 30*time.Second, "Graceful shutdown timeout")
)

func main() {
	flag.Parse()

	logger := newLogger(*logLevel)
	logger.Info("starting agentcore runtime", slog.String("version", Version), slog.String("config", *configFile))

	rt, err := agentcore.NewFromConfig(*configFile, runtime.WithLogger(logger))
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := rt.RegisterFactory("echo", func(ctx context.Context, id agentcore.ID, h agentcore.Handle) (agentcore.Agent, error) {
		return agentcore.NewFuncAgent(id, "echoes its input", func(ctx context.Context, payload any, mc agentcore.MessageContext) (any, error) {
			logger.Info("echo", slog.String("agent_id", id.String()), slog.String("message_id", mc.MessageID))
			return payload, nil
		}), nil
	}); err != nil {
		logger.Error("failed to register echo factory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	if err := rt.Start(ctx); err != nil {
		logger.Error("failed to start runtime", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("runtime started", slog.Any("agent_types", rt.RegisteredTypes()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down", slog.Duration("timeout", *stopTimeout))
	stopCtx, cancel := context.WithTimeout(context.Background(), *stopTimeout)
	defer cancel()

	if err := rt.Stop(stopCtx); err != nil {
		logger.Error("shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("runtime stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
