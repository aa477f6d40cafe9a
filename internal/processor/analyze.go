package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// AnalyzeAll analyzes every MP3 in the audio directory, one at a time.
func (p *implProcessor) AnalyzeAll(ctx context.Context, opts AnalyzeOptions) (AnalyzeReport, error) {
	if p.analyzer == nil {
		return AnalyzeReport{}, ErrNoAnalyzer
	}

	audioFiles, err := p.transcoder.ListAudio()
	if err != nil {
		return AnalyzeReport{}, fmt.Errorf("list audio: %w", err)
	}
	if len(audioFiles) == 0 {
		p.logger.Warn(ctx, "No audio files found to analyze")
		return AnalyzeReport{}, nil
	}

	p.logger.Info(ctx, "Found %d audio files to analyze", len(audioFiles))

	report := AnalyzeReport{Outcomes: make([]Outcome, 0, len(audioFiles))}
	for i, audioFile := range audioFiles {
		p.logger.Info(ctx, "[%d/%d] %s", i+1, len(audioFiles), filepath.Base(audioFile))
		report.Outcomes = append(report.Outcomes, p.AnalyzeFile(ctx, audioFile, opts))
	}

	p.logger.Info(ctx, "Analysis complete: %d analyzed, %d skipped, %d failed",
		report.Count(OutcomeAnalyzed), report.Count(OutcomeSkipped), report.Count(OutcomeFailed))
	return report, nil
}

// AnalyzeFile returns the cached analysis when skipping is allowed, otherwise
// asks the analyzer and stores the answer.
func (p *implProcessor) AnalyzeFile(ctx context.Context, audioFile string, opts AnalyzeOptions) Outcome {
	name := filepath.Base(audioFile)
	out := Outcome{
		AudioFile:    audioFile,
		AnalysisPath: p.store.PathFor(audioFile),
	}

	if p.store.ShouldSkip(audioFile, opts.SkipExisting) {
		p.logger.Info(ctx, "Skipping %s (analysis file exists)", name)
		_, content, err := p.store.Load(audioFile)
		if err != nil {
			return failed(out, err)
		}
		out.Status = OutcomeSkipped
		out.Content = content
		return out
	}

	if p.analyzer == nil {
		return failed(out, ErrNoAnalyzer)
	}

	audio, err := os.ReadFile(audioFile)
	if err != nil {
		p.logger.Error(ctx, "Failed to read %s: %v", audioFile, err)
		return failed(out, fmt.Errorf("read audio: %w", err))
	}

	p.logger.Info(ctx, "Analyzing %s with %s", name, p.analyzer.Model())
	text, err := p.analyzer.Analyze(ctx, audio, opts.Prompt)
	if err != nil {
		p.logger.Error(ctx, "Failed to analyze %s: %v", audioFile, err)
		return failed(out, err)
	}

	if err := p.store.Save(audioFile, text); err != nil {
		p.logger.Error(ctx, "Failed to save analysis for %s: %v", name, err)
		out.Content = text
		return failed(out, err)
	}

	p.logger.Info(ctx, "Saved analysis for %s -> %s", name, out.AnalysisPath)
	out.Status = OutcomeAnalyzed
	out.Content = text
	return out
}

func failed(out Outcome, err error) Outcome {
	out.Status = OutcomeFailed
	out.Err = err
	return out
}
