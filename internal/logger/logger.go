package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger backend.
type Options struct {
	Level  string
	Format string    // text or json
	File   string    // optional rotating log file, mirrored with Output
	Output io.Writer // defaults to stdout
}

type implLogger struct {
	logger *logrus.Logger
}

// New creates a new Logger instance writing to stdout
func New(level string) Logger {
	l, _ := NewWithOptions(Options{Level: level})
	return l
}

// NewWithOptions builds a logger from Options. A file that cannot be created
// is reported but the returned logger still writes to Output.
func NewWithOptions(opts Options) (Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(parseLevel(opts.Level))

	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		base.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}

	l := &implLogger{logger: base}

	if opts.File == "" {
		return l, nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return l, err
	}
	base.SetOutput(io.MultiWriter(out, &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}))
	return l, nil
}

func normalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "debug", "info", "warn", "error":
		return level
	case "warning":
		return "warn"
	default:
		return "info"
	}
}

func parseLevel(level string) logrus.Level {
	switch normalizeLevel(level) {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.logger.WithContext(ctx).Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.logger.WithContext(ctx).Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.logger.WithContext(ctx).Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.logger.WithContext(ctx).Errorf(msg, args...)
}
