package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// transcribe runs whisper over the extracted audio, parses the resulting
// time-aligned segments, and persists the transcript text as an
// artifact. This is the longest-running stage and the only one with
// fine-grained internal progress: each segment advances the percentage
// linearly through the 55-70 range.
func (p *implPipeline) transcribe(ctx context.Context, taskID, audioName string) (string, string, error) {
	p.reporter.Progress(ctx, taskID, "Transcribing audio...", 55)

	audioPath := p.store.Path(audioName)
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	args := []string{
		"-m", p.cfg.Whisper.ModelPath,
		"-f", audioPath,
		"-osrt",
		"-l", p.cfg.Whisper.Language,
		"-t", strconv.Itoa(p.cfg.Whisper.Threads),
		"--output-file", outputPrefix,
	}

	if _, err := p.executor.Execute(ctx, p.cfg.Whisper.BinaryPath, args...); err != nil {
		p.reporter.Status(ctx, taskID, fmt.Sprintf("Transcription failed: %v", err))
		return "", "", fmt.Errorf("whisper transcribe: %w", err)
	}

	srtPath := outputPrefix + ".srt"
	srtData, err := os.ReadFile(srtPath)
	if err != nil {
		p.reporter.Status(ctx, taskID, fmt.Sprintf("Transcription failed: %v", err))
		return "", "", fmt.Errorf("read whisper output: %w", err)
	}

	segments := parseSRT(string(srtData))
	for i, seg := range segments {
		pct := 55 + int(float64(i)/float64(len(segments))*15)
		p.reporter.Progress(ctx, taskID, fmt.Sprintf("Transcribing: %s...", preview(seg.Text, 50)), pct)
	}

	var texts []string
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}
	transcript := strings.Join(texts, " ")

	transcriptName := strings.TrimSuffix(audioName, filepath.Ext(audioName)) + ".txt"
	if _, err := p.store.Save(transcriptName, strings.NewReader(transcript)); err != nil {
		p.reporter.Status(ctx, taskID, fmt.Sprintf("Transcription failed: %v", err))
		return "", "", fmt.Errorf("save transcript: %w", err)
	}

	p.reporter.Progress(ctx, taskID, "Audio transcription complete.", 70)
	return transcript, transcriptName, nil
}

// preview truncates segment text for status messages.
func preview(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max])
}
