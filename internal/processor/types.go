package processor

import (
	"errors"

	"github.com/nguyentantai21042004/needle-flow/internal/transcoder"
)

// ErrNoAnalyzer is returned by analysis calls on a processor built without an analyzer.
var ErrNoAnalyzer = errors.New("no analyzer configured")

// ConvertReport summarises a directory conversion.
type ConvertReport struct {
	Results []transcoder.Result
}

// Artifacts returns the usable audio paths in listing order.
func (r ConvertReport) Artifacts() []string {
	return transcoder.Artifacts(r.Results)
}

// Count returns how many results have the given status.
func (r ConvertReport) Count(status transcoder.Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// AnalyzeOptions controls one analysis batch.
type AnalyzeOptions struct {
	SkipExisting bool
	Prompt       string
}

// OutcomeStatus tags what happened to one audio file.
type OutcomeStatus int

const (
	OutcomeAnalyzed OutcomeStatus = iota
	OutcomeSkipped
	OutcomeFailed
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeAnalyzed:
		return "analyzed"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of analyzing (or skipping) one audio file.
type Outcome struct {
	AudioFile    string
	AnalysisPath string
	Status       OutcomeStatus
	Content      string
	Err          error
}

// AnalyzeReport holds one Outcome per audio file, in listing order.
type AnalyzeReport struct {
	Outcomes []Outcome
}

// Count returns how many outcomes have the given status.
func (r AnalyzeReport) Count(status OutcomeStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
