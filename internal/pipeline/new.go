package pipeline

import (
	"vidbrief/internal/config"
	"vidbrief/internal/document"
	"vidbrief/internal/logger"
	"vidbrief/internal/progress"
	"vidbrief/internal/storage"
	"vidbrief/internal/summarize"
	"vidbrief/pkg/executor"
)

type implPipeline struct {
	cfg        *config.Config
	executor   executor.Executor
	store      *storage.Store
	summarizer summarize.Summarizer
	renderer   document.Renderer
	reporter   progress.Reporter
	logger     logger.Logger
}

// New creates a Pipeline instance.
func New(
	cfg *config.Config,
	exec executor.Executor,
	store *storage.Store,
	summarizer summarize.Summarizer,
	renderer document.Renderer,
	reporter progress.Reporter,
	log logger.Logger,
) Pipeline {
	return &implPipeline{
		cfg:        cfg,
		executor:   exec,
		store:      store,
		summarizer: summarizer,
		renderer:   renderer,
		reporter:   reporter,
		logger:     log,
	}
}
