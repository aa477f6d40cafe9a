package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/needle-flow/internal/transcoder"
)

// Process converts a single video and optionally analyzes its audio.
func (p *implProcessor) Process(ctx context.Context, videoPath string) error {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting video processing: %s", videoPath)
	p.logger.Info(ctx, "========================================")

	res := p.transcoder.Convert(ctx, videoPath)
	switch res.Status {
	case transcoder.StatusNoAudio:
		p.logger.Warn(ctx, "Skipping %s: no audio track", filepath.Base(videoPath))
		return nil
	case transcoder.StatusFailed:
		return fmt.Errorf("convert %s: %w", filepath.Base(videoPath), res.Err)
	}

	if p.opts.AutoAnalyze {
		outcome := p.AnalyzeFile(ctx, res.AudioPath, p.opts.Analyze)
		if outcome.Status == OutcomeFailed {
			return fmt.Errorf("analyze %s: %w", filepath.Base(res.AudioPath), outcome.Err)
		}
	}

	p.logger.Info(ctx, "Processing completed: %s -> %s (%s)", videoPath, res.AudioPath, time.Since(startTime))
	return nil
}

// ConvertDirectory converts every video in dir. An invalid directory aborts
// before anything is converted; per-video failures only mark their Result.
func (p *implProcessor) ConvertDirectory(ctx context.Context, dir string) (ConvertReport, error) {
	startTime := time.Now()

	results, err := p.transcoder.ConvertAll(ctx, dir)
	if err != nil {
		return ConvertReport{}, err
	}

	report := ConvertReport{Results: results}
	p.logger.Info(ctx, "Conversion complete: %d converted, %d existing, %d without audio, %d failed (%s)",
		report.Count(transcoder.StatusConverted),
		report.Count(transcoder.StatusExisting),
		report.Count(transcoder.StatusNoAudio),
		report.Count(transcoder.StatusFailed),
		time.Since(startTime).Round(time.Millisecond),
	)
	return report, nil
}
