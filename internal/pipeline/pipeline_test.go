package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"vidbrief/internal/config"
	"vidbrief/internal/logger"
	"vidbrief/internal/storage"
)

// fakeExecutor simulates external command execution.
type fakeExecutor struct {
	run func(ctx context.Context, name string, args ...string) (string, error)
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	if f.run == nil {
		return "", nil
	}
	return f.run(ctx, name, args...)
}

// fakeSummarizer returns a canned summary or error.
type fakeSummarizer struct {
	summary string
	err     error
	called  bool
	got     string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	f.called = true
	f.got = transcript
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

// fakeRenderer writes a marker file unless told to fail.
type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) Render(title, markdown, outputPath string) error {
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outputPath, []byte(title+"\n"+markdown), 0644)
}

// update is one recorded progress report.
type update struct {
	text string
	pct  *int
}

// recordingReporter captures every report in order.
type recordingReporter struct {
	mu      sync.Mutex
	updates []update
}

func (r *recordingReporter) Status(ctx context.Context, taskID, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, update{text: text})
}

func (r *recordingReporter) Progress(ctx context.Context, taskID, text string, pct int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := pct
	r.updates = append(r.updates, update{text: text, pct: &p})
}

func (r *recordingReporter) percentages() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []int
	for _, u := range r.updates {
		if u.pct != nil {
			out = append(out, *u.pct)
		}
	}
	return out
}

func (r *recordingReporter) lastStatus() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.updates) == 0 {
		return ""
	}
	return r.updates[len(r.updates)-1].text
}

const testSRT = `1
00:00:00,000 --> 00:00:03,000
The first segment.

2
00:00:03,000 --> 00:00:06,000
The second segment.
`

func testConfig() *config.Config {
	return &config.Config{
		Whisper: config.WhisperConfig{
			BinaryPath: "whisper-bin",
			ModelPath:  "models/ggml-base.bin",
			Language:   "en",
			Threads:    2,
		},
		FFmpeg: config.FFmpegConfig{SampleRate: 16000, Channels: 1},
	}
}

// happyExecutor produces a wav for ffmpeg and an SRT for whisper.
func happyExecutor(t *testing.T) *fakeExecutor {
	t.Helper()
	return &fakeExecutor{
		run: func(ctx context.Context, name string, args ...string) (string, error) {
			switch name {
			case "ffmpeg":
				outPath := args[len(args)-1]
				if err := os.WriteFile(outPath, []byte("wav"), 0644); err != nil {
					t.Fatal(err)
				}
				return "", nil
			case "whisper-bin":
				prefix := argValue(t, args, "--output-file")
				if err := os.WriteFile(prefix+".srt", []byte(testSRT), 0644); err != nil {
					t.Fatal(err)
				}
				return "", nil
			default:
				t.Fatalf("unexpected command %q", name)
				return "", nil
			}
		},
	}
}

func argValue(t *testing.T, args []string, flag string) string {
	t.Helper()
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("flag %s not found in %v", flag, args)
	return ""
}

func newTestPipeline(t *testing.T, exec *fakeExecutor, summ *fakeSummarizer, rend *fakeRenderer, rep *recordingReporter) (Pipeline, *storage.Store) {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return New(testConfig(), exec, store, summ, rend, rep, logger.New("error")), store
}

func TestRunHappyPath(t *testing.T) {
	summ := &fakeSummarizer{summary: "## Summary\n- point"}
	rep := &recordingReporter{}
	pipe, store := newTestPipeline(t, happyExecutor(t), summ, &fakeRenderer{}, rep)

	result, err := pipe.Run(context.Background(), Request{
		TaskID:   "task-1",
		Filename: "my lecture.mp4",
		Content:  strings.NewReader("video bytes"),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Summary != "## Summary\n- point" {
		t.Errorf("summary = %q", result.Summary)
	}
	if result.VideoName != "my_lecture.mp4" {
		t.Errorf("video name = %q, want sanitized name", result.VideoName)
	}
	if result.AudioName != "my_lecture.wav" {
		t.Errorf("audio name = %q", result.AudioName)
	}
	if result.TranscriptName != "my_lecture.txt" {
		t.Errorf("transcript name = %q", result.TranscriptName)
	}

	for _, name := range []string{result.VideoName, result.AudioName, result.TranscriptName} {
		if !store.Exists(name) {
			t.Errorf("artifact %s missing from storage", name)
		}
	}

	if summ.got != "The first segment. The second segment." {
		t.Errorf("summarizer transcript = %q", summ.got)
	}

	pcts := rep.percentages()
	if len(pcts) == 0 {
		t.Fatal("no progress reported")
	}
	for i := 1; i < len(pcts); i++ {
		if pcts[i] < pcts[i-1] {
			t.Fatalf("progress decreased: %v", pcts)
		}
	}
	if pcts[0] != 10 {
		t.Errorf("first percentage = %d, want 10", pcts[0])
	}
	if pcts[len(pcts)-1] != 90 {
		t.Errorf("last percentage = %d, want 90 (render not yet run)", pcts[len(pcts)-1])
	}

	// Per-segment sub-progress falls inside the transcription range.
	for _, u := range rep.updates {
		if strings.HasPrefix(u.text, "Transcribing: ") {
			if u.pct == nil || *u.pct < 55 || *u.pct > 70 {
				t.Errorf("segment progress out of range: %v", u)
			}
		}
	}
}

func TestRenderProducesDocument(t *testing.T) {
	rep := &recordingReporter{}
	pipe, store := newTestPipeline(t, happyExecutor(t), &fakeSummarizer{}, &fakeRenderer{}, rep)

	if err := pipe.Render(context.Background(), "task-1", "## Summary"); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !store.Exists(DocumentName("task-1")) {
		t.Fatal("rendered document missing from storage")
	}

	pcts := rep.percentages()
	if len(pcts) != 2 || pcts[0] != 95 || pcts[1] != 100 {
		t.Errorf("render percentages = %v, want [95 100]", pcts)
	}
}

func TestExtractFailureHaltsPipeline(t *testing.T) {
	exec := &fakeExecutor{
		run: func(ctx context.Context, name string, args ...string) (string, error) {
			if name == "ffmpeg" {
				return "", errors.New("decode error")
			}
			t.Fatalf("stage after extract ran: %q", name)
			return "", nil
		},
	}
	summ := &fakeSummarizer{}
	rep := &recordingReporter{}
	pipe, store := newTestPipeline(t, exec, summ, &fakeRenderer{}, rep)

	_, err := pipe.Run(context.Background(), Request{
		TaskID:   "task-1",
		Filename: "clip.mp4",
		Content:  strings.NewReader("video"),
	})
	if err == nil {
		t.Fatal("expected error")
	}

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("error type = %T, want *StageError", err)
	}
	if stageErr.Stage != StageExtract {
		t.Errorf("failing stage = %q, want %q", stageErr.Stage, StageExtract)
	}

	if summ.called {
		t.Error("summarizer must not run after extraction failure")
	}
	if store.Exists("clip.txt") {
		t.Error("transcript artifact must not exist after extraction failure")
	}
	if store.Exists(DocumentName("task-1")) {
		t.Error("document artifact must not exist after extraction failure")
	}

	if !strings.HasPrefix(rep.lastStatus(), "Audio extraction failed") {
		t.Errorf("failure status = %q", rep.lastStatus())
	}
}

func TestTranscribeFailureIsTagged(t *testing.T) {
	exec := &fakeExecutor{
		run: func(ctx context.Context, name string, args ...string) (string, error) {
			if name == "ffmpeg" {
				outPath := args[len(args)-1]
				return "", os.WriteFile(outPath, []byte("wav"), 0644)
			}
			return "", errors.New("inference error")
		},
	}
	rep := &recordingReporter{}
	pipe, _ := newTestPipeline(t, exec, &fakeSummarizer{}, &fakeRenderer{}, rep)

	_, err := pipe.Run(context.Background(), Request{
		TaskID:   "task-1",
		Filename: "clip.mp4",
		Content:  strings.NewReader("video"),
	})

	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageTranscribe {
		t.Fatalf("error = %v, want transcribe StageError", err)
	}
}

func TestSummarizeFailureIsTagged(t *testing.T) {
	summ := &fakeSummarizer{err: fmt.Errorf("service unavailable")}
	rep := &recordingReporter{}
	pipe, _ := newTestPipeline(t, happyExecutor(t), summ, &fakeRenderer{}, rep)

	_, err := pipe.Run(context.Background(), Request{
		TaskID:   "task-1",
		Filename: "clip.mp4",
		Content:  strings.NewReader("video"),
	})

	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageSummarize {
		t.Fatalf("error = %v, want summarize StageError", err)
	}
	if !strings.HasPrefix(rep.lastStatus(), "Summarization failed") {
		t.Errorf("failure status = %q", rep.lastStatus())
	}
}

func TestRenderFailureIsTagged(t *testing.T) {
	rep := &recordingReporter{}
	pipe, store := newTestPipeline(t, happyExecutor(t), &fakeSummarizer{}, &fakeRenderer{err: errors.New("bad markup")}, rep)

	err := pipe.Render(context.Background(), "task-1", "## Summary")

	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageRender {
		t.Fatalf("error = %v, want render StageError", err)
	}
	if store.Exists(DocumentName("task-1")) {
		t.Error("document must not exist after render failure")
	}
}
