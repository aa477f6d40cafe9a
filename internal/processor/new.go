package processor

import (
	"github.com/nguyentantai21042004/needle-flow/internal/analyzer"
	"github.com/nguyentantai21042004/needle-flow/internal/cache"
	"github.com/nguyentantai21042004/needle-flow/internal/logger"
	"github.com/nguyentantai21042004/needle-flow/internal/transcoder"
)

// Options configures the watcher-facing Process behaviour.
type Options struct {
	AutoAnalyze bool
	Analyze     AnalyzeOptions
}

type implProcessor struct {
	opts       Options
	transcoder transcoder.Transcoder
	store      cache.Store
	analyzer   analyzer.Analyzer
	logger     logger.Logger
}

// New creates a new Processor instance. an may be nil when only conversion is needed.
func New(opts Options, tc transcoder.Transcoder, store cache.Store, an analyzer.Analyzer, log logger.Logger) Processor {
	return &implProcessor{
		opts:       opts,
		transcoder: tc,
		store:      store,
		analyzer:   an,
		logger:     log,
	}
}
