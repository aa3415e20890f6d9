package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"vidbrief/internal/config"
	"vidbrief/internal/document"
	"vidbrief/internal/logger"
	"vidbrief/internal/pipeline"
	"vidbrief/internal/progress"
	"vidbrief/internal/registry"
	"vidbrief/internal/server"
	"vidbrief/internal/storage"
	"vidbrief/internal/summarize"
	"vidbrief/internal/task"
	"vidbrief/pkg/executor"
)

func main() {
	ctx := context.Background()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	apiKeys := splitKeys(os.Getenv("GEMINI_API_KEYS"))
	if len(apiKeys) == 0 {
		log.Error(ctx, "GEMINI_API_KEYS is not set")
		os.Exit(1)
	}

	store, err := storage.New(cfg.Paths.Storage)
	if err != nil {
		log.Error(ctx, "Failed to initialize storage: %v", err)
		os.Exit(1)
	}

	reg := registry.New()
	reporter := progress.New(reg, log)
	summarizer := summarize.New(apiKeys, cfg.Gemini.Model, log)
	renderer := document.NewDocxRenderer()
	pipe := pipeline.New(cfg, executor.New(), store, summarizer, renderer, reporter, log)
	coordinator := task.New(reg, pipe, log, cfg.Server.ViewerWaitWindow)

	e := server.New(cfg, reg, coordinator, store, log)

	log.Info(ctx, "Starting vidbrief server on port %d", cfg.Server.Port)
	log.Info(ctx, "Storage root: %s", cfg.Paths.Storage)

	if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Error(ctx, "Server stopped: %v", err)
		os.Exit(1)
	}
}

func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
