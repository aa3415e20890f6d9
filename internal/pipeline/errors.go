package pipeline

import "fmt"

// Stage names used in error reporting and logs.
const (
	StageIngest     = "ingest"
	StageExtract    = "extract"
	StageTranscribe = "transcribe"
	StageSummarize  = "summarize"
	StageRender     = "render"
)

// StageError tags a failure with the pipeline stage it occurred in.
// A stage failure aborts all remaining stages for that run.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
