package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// extractAudio extracts the audio track as 16-bit PCM WAV, resampled to
// the configured rate and channel count for the transcriber.
func (p *implPipeline) extractAudio(ctx context.Context, taskID, videoName string) (string, error) {
	p.reporter.Progress(ctx, taskID, "Extracting audio from video...", 30)

	audioName := strings.TrimSuffix(videoName, filepath.Ext(videoName)) + ".wav"

	args := []string{
		"-i", p.store.Path(videoName),
		"-vn",
		"-ar", strconv.Itoa(p.cfg.FFmpeg.SampleRate),
		"-ac", strconv.Itoa(p.cfg.FFmpeg.Channels),
		"-c:a", "pcm_s16le",
		"-y",
		p.store.Path(audioName),
	}

	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		p.reporter.Status(ctx, taskID, fmt.Sprintf("Audio extraction failed: %v", err))
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	p.reporter.Progress(ctx, taskID, "Audio extraction complete.", 50)
	return audioName, nil
}
