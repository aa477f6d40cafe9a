package processor

import "context"

// Processor drives batches of conversions and analyses.
type Processor interface {
	// Process converts one video and, when auto-analysis is on, analyzes it.
	// It is the watcher's event handler.
	Process(ctx context.Context, videoPath string) error
	ConvertDirectory(ctx context.Context, dir string) (ConvertReport, error)
	AnalyzeAll(ctx context.Context, opts AnalyzeOptions) (AnalyzeReport, error)
	AnalyzeFile(ctx context.Context, audioPath string, opts AnalyzeOptions) Outcome
}
