package pipeline

import (
	"context"
	"fmt"
	"time"
)

// Run executes ingest, extraction, transcription, and summarization in
// order for one task. The first stage failure aborts the run; remaining
// stages never start. Rendering is not part of Run: the coordinator
// schedules it separately after the submission response is sent.
func (p *implPipeline) Run(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()
	p.logger.Info(ctx, "Starting pipeline for task %s (%s)", req.TaskID, req.Filename)

	videoName, err := p.ingest(ctx, req)
	if err != nil {
		return nil, &StageError{Stage: StageIngest, Err: err}
	}

	audioName, err := p.extractAudio(ctx, req.TaskID, videoName)
	if err != nil {
		return nil, &StageError{Stage: StageExtract, Err: err}
	}

	transcript, transcriptName, err := p.transcribe(ctx, req.TaskID, audioName)
	if err != nil {
		return nil, &StageError{Stage: StageTranscribe, Err: err}
	}

	summary, err := p.summarize(ctx, req.TaskID, transcript)
	if err != nil {
		return nil, &StageError{Stage: StageSummarize, Err: err}
	}

	p.logger.Info(ctx, "Pipeline for task %s finished in %s", req.TaskID, time.Since(startTime))

	return &Result{
		Summary:        summary,
		VideoName:      videoName,
		AudioName:      audioName,
		TranscriptName: transcriptName,
	}, nil
}

// summarize is the fourth stage: transcript text in, markdown out.
func (p *implPipeline) summarize(ctx context.Context, taskID, transcript string) (string, error) {
	p.reporter.Progress(ctx, taskID, "Generating summary...", 80)

	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		p.reporter.Status(ctx, taskID, fmt.Sprintf("Summarization failed: %v", err))
		return "", err
	}

	p.reporter.Progress(ctx, taskID, "Summary generated.", 90)
	return summary, nil
}

// Render is the fifth stage: summary markdown to a styled document in
// storage, named by task id. It runs detached from the submission
// request, so its failure is observable only through the progress
// channel and the document staying absent.
func (p *implPipeline) Render(ctx context.Context, taskID, summary string) error {
	p.reporter.Progress(ctx, taskID, "Generating document...", 95)

	outputPath := p.store.Path(DocumentName(taskID))
	if err := p.renderer.Render("Summary Report", summary, outputPath); err != nil {
		p.reporter.Status(ctx, taskID, fmt.Sprintf("Document rendering failed: %v", err))
		return &StageError{Stage: StageRender, Err: err}
	}

	p.reporter.Progress(ctx, taskID, "Document rendering complete.", 100)
	return nil
}
