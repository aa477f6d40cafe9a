package transcoder

import (
	"github.com/nguyentantai21042004/needle-flow/internal/config"
	"github.com/nguyentantai21042004/needle-flow/internal/logger"
	"github.com/nguyentantai21042004/needle-flow/pkg/executor"
)

// Options holds everything a conversion needs besides the video path.
type Options struct {
	AudioDir    string
	MaxSizeMB   float64
	FFmpegPath  string
	FFprobePath string
}

// OptionsFromConfig maps the ffmpeg and paths sections onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		AudioDir:    cfg.AudioDir(),
		MaxSizeMB:   cfg.FFmpeg.MaxSizeMB,
		FFmpegPath:  cfg.FFmpeg.BinaryPath,
		FFprobePath: cfg.FFmpeg.ProbePath,
	}
}

type implTranscoder struct {
	opts     Options
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Transcoder. Zero values in opts fall back to defaults.
func New(opts Options, exec executor.Executor, log logger.Logger) Transcoder {
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = config.DefaultMaxSizeMB
	}
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = "ffmpeg"
	}
	if opts.FFprobePath == "" {
		opts.FFprobePath = "ffprobe"
	}
	return &implTranscoder{
		opts:     opts,
		executor: exec,
		logger:   log,
	}
}
