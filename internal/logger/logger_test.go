package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()
	log := New("info")

	// These should not panic
	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	log.Warn(ctx, "warn message")
	log.Error(ctx, "error message")

	log.Info(ctx, "formatted message: %s %d", "test", 123)
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		wantLevel   logrus.Level
		emit        func(Logger)
		wantOutput  bool
	}{
		{"debug shown at debug", "debug", logrus.DebugLevel, func(l Logger) { l.Debug(context.Background(), "m") }, true},
		{"debug hidden at info", "info", logrus.InfoLevel, func(l Logger) { l.Debug(context.Background(), "m") }, false},
		{"info shown at info", "info", logrus.InfoLevel, func(l Logger) { l.Info(context.Background(), "m") }, true},
		{"warning alias", "WARNING", logrus.WarnLevel, func(l Logger) { l.Info(context.Background(), "m") }, false},
		{"warn hidden at error", "error", logrus.ErrorLevel, func(l Logger) { l.Warn(context.Background(), "m") }, false},
		{"error always shown", "debug", logrus.DebugLevel, func(l Logger) { l.Error(context.Background(), "m") }, true},
		{"invalid falls back to info", "bogus", logrus.InfoLevel, func(l Logger) { l.Info(context.Background(), "m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := NewWithOptions(Options{Level: tt.configLevel, Output: &buf})
			if err != nil {
				t.Fatalf("NewWithOptions() error = %v", err)
			}
			if got := log.(*implLogger).logger.GetLevel(); got != tt.wantLevel {
				t.Errorf("level = %v, want %v", got, tt.wantLevel)
			}
			tt.emit(log)
			if got := buf.Len() > 0; got != tt.wantOutput {
				t.Errorf("wrote output = %v, want %v (%q)", got, tt.wantOutput, buf.String())
			}
		})
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithOptions(Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("NewWithOptions() error = %v", err)
	}
	log.Info(context.Background(), "converted %s", "talk.mp4")
	if !strings.Contains(buf.String(), `"msg":"converted talk.mp4"`) {
		t.Errorf("unexpected JSON output %q", buf.String())
	}
}

func TestNewWithOptionsWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "needle.log")
	log, err := NewWithOptions(Options{Level: "info", Format: "json", File: path})
	if err != nil {
		t.Fatalf("NewWithOptions() error = %v", err)
	}

	log.Info(context.Background(), "hello %s", "file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}
