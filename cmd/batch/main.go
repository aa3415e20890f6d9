package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"vidbrief/internal/config"
	"vidbrief/internal/document"
	"vidbrief/internal/logger"
	"vidbrief/internal/pipeline"
	"vidbrief/internal/progress"
	"vidbrief/internal/storage"
	"vidbrief/internal/summarize"
	"vidbrief/internal/watcher"
	"vidbrief/pkg/executor"
)

// The batch runner drives the same stage pipeline as the server, but
// against a drop folder: every video file that appears in paths.input
// is processed under a generated task id, with progress going to the
// log instead of a notification channel.
func main() {
	ctx := context.Background()

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

	if err := os.MkdirAll(cfg.Paths.Input, 0755); err != nil {
		log.Error(ctx, "Failed to create input directory: %v", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.Paths.Storage)
	if err != nil {
		log.Error(ctx, "Failed to initialize storage: %v", err)
		os.Exit(1)
	}

	reporter := progress.NewLogReporter(log)
	summarizer := summarize.New(apiKeys, cfg.Gemini.Model, log)
	renderer := document.NewDocxRenderer()
	pipe := pipeline.New(cfg, executor.New(), store, summarizer, renderer, reporter, log)

	handler := func(ctx context.Context, filePath string) error {
		taskID := uuid.New().String()

		f, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("open %s: %w", filePath, err)
		}
		defer f.Close()

		result, err := pipe.Run(ctx, pipeline.Request{
			TaskID:   taskID,
			Filename: filepath.Base(filePath),
			Content:  f,
		})
		if err != nil {
			return err
		}

		// No deferred response to decouple from here; render inline.
		if err := pipe.Render(ctx, taskID, result.Summary); err != nil {
			return err
		}

		log.Info(ctx, "Processed %s -> %s", filePath, pipeline.DocumentName(taskID))
		return nil
	}

	w, err := watcher.New(cfg.Paths.Input, handler, log, 2)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Batch runner ready, monitoring %s", cfg.Paths.Input)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	cancel()
	log.Info(ctx, "Batch runner stopped")
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
