package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	BackendGemini = "gemini"
	BackendVertex = "vertex"
)

type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	FFmpeg   FFmpegConfig   `yaml:"ffmpeg"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Watch    WatchConfig    `yaml:"watch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type FFmpegConfig struct {
	BinaryPath string  `yaml:"binary_path"`
	ProbePath  string  `yaml:"probe_path"`
	MaxSizeMB  float64 `yaml:"max_size_mb"`
}

type GeminiConfig struct {
	Backend           string        `yaml:"backend"`
	Model             string        `yaml:"model"`
	APIKeys           []string      `yaml:"api_keys"`
	CredentialsFile   string        `yaml:"credentials_file"`
	Project           string        `yaml:"project"`
	Location          string        `yaml:"location"`
	Prompt            string        `yaml:"prompt"`
	PromptFile        string        `yaml:"prompt_file"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	Timeout           time.Duration `yaml:"timeout"`
}

type AnalysisConfig struct {
	SkipExisting *bool `yaml:"skip_existing"`
}

type WatchConfig struct {
	SettleDelay time.Duration `yaml:"settle_delay"`
	Analyze     bool          `yaml:"analyze"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ErrMissingCredentials is returned by ValidateCredentials.
var ErrMissingCredentials = errors.New("missing credentials")

// AudioDir is where converted MP3 files live.
func (c *Config) AudioDir() string { return filepath.Join(c.Paths.Output, "audio") }

// AnalysisDir is where analysis text files live.
func (c *Config) AnalysisDir() string { return filepath.Join(c.Paths.Output, "analysis") }

// ExportDir is where docx exports are written.
func (c *Config) ExportDir() string { return filepath.Join(c.Paths.Output, "export") }

// SkipExisting reports whether re-analysis is skipped for files that already have one.
func (c *Config) SkipExisting() bool {
	if c.Analysis.SkipExisting == nil {
		return true
	}
	return *c.Analysis.SkipExisting
}

// ActivePrompt returns the prompt sent with every audio clip.
// prompt_file wins over the inline prompt; the built-in prompt is the fallback.
func (c *Config) ActivePrompt() (string, error) {
	if c.Gemini.PromptFile != "" {
		data, err := os.ReadFile(c.Gemini.PromptFile)
		if err != nil {
			return "", fmt.Errorf("read prompt file: %w", err)
		}
		if p := strings.TrimSpace(string(data)); p != "" {
			return p, nil
		}
	}
	if strings.TrimSpace(c.Gemini.Prompt) != "" {
		return c.Gemini.Prompt, nil
	}
	return DefaultPrompt, nil
}

func (c *Config) Validate() error {
	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "videos"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.FFmpeg.MaxSizeMB < 0 {
		return fmt.Errorf("ffmpeg.max_size_mb must be positive")
	}
	if c.FFmpeg.MaxSizeMB == 0 {
		c.FFmpeg.MaxSizeMB = DefaultMaxSizeMB
	}

	c.Gemini.Backend = strings.ToLower(strings.TrimSpace(c.Gemini.Backend))
	if c.Gemini.Backend == "" {
		c.Gemini.Backend = BackendGemini
	}
	if c.Gemini.Backend != BackendGemini && c.Gemini.Backend != BackendVertex {
		return fmt.Errorf("gemini.backend must be %q or %q, got %q", BackendGemini, BackendVertex, c.Gemini.Backend)
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = DefaultModel
	}
	if c.Gemini.Project == "" {
		c.Gemini.Project = DefaultProject
	}
	if c.Gemini.Location == "" {
		c.Gemini.Location = DefaultLocation
	}
	if c.Gemini.RequestsPerMinute < 0 {
		return fmt.Errorf("gemini.requests_per_minute must not be negative")
	}
	if c.Gemini.Timeout < 0 {
		return fmt.Errorf("gemini.timeout must not be negative")
	}

	if c.Watch.SettleDelay == 0 {
		c.Watch.SettleDelay = 500 * time.Millisecond
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}

// ValidateCredentials checks the selected backend has what it needs to open a client.
func (c *Config) ValidateCredentials() error {
	switch c.Gemini.Backend {
	case BackendVertex:
		if c.Gemini.CredentialsFile == "" {
			return fmt.Errorf("%w: vertex backend needs gemini.credentials_file", ErrMissingCredentials)
		}
		if _, err := os.Stat(c.Gemini.CredentialsFile); err != nil {
			return fmt.Errorf("%w: invalid GCP credentials file path %s", ErrMissingCredentials, c.Gemini.CredentialsFile)
		}
		if c.Gemini.Project == "" || c.Gemini.Location == "" {
			return fmt.Errorf("%w: vertex backend needs gemini.project and gemini.location", ErrMissingCredentials)
		}
	default:
		for _, key := range c.Gemini.APIKeys {
			if strings.TrimSpace(key) != "" {
				return nil
			}
		}
		return fmt.Errorf("%w: gemini API key is missing", ErrMissingCredentials)
	}
	return nil
}
