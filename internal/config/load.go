package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override credentials from the file.
const (
	EnvGeminiAPIKey      = "GEMINI_API_KEY"
	EnvVertexProject     = "VERTEX_PROJECT_ID"
	EnvVertexLocation    = "VERTEX_LOCATION"
	EnvVertexCredentials = "VERTEX_CREDENTIALS_FILE"
)

// Load reads a YAML config file, applies .env and environment overrides and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return finish(cfg)
}

// LoadOrDefault behaves like Load but falls back to defaults when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return finish(&Config{})
}

func finish(cfg *Config) (*Config, error) {
	// A missing .env is the normal case.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// applyEnv fills credentials from the environment. Credentials already present
// in the file are kept; the backend is only switched when none were configured.
func applyEnv(cfg *Config) {
	hasCreds := len(cfg.Gemini.APIKeys) > 0 || cfg.Gemini.CredentialsFile != ""

	if key := strings.TrimSpace(os.Getenv(EnvGeminiAPIKey)); key != "" && len(cfg.Gemini.APIKeys) == 0 {
		cfg.Gemini.APIKeys = []string{key}
		if !hasCreds {
			cfg.Gemini.Backend = BackendGemini
			hasCreds = true
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvVertexProject)); v != "" {
		cfg.Gemini.Project = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvVertexLocation)); v != "" {
		cfg.Gemini.Location = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvVertexCredentials)); v != "" && cfg.Gemini.CredentialsFile == "" {
		cfg.Gemini.CredentialsFile = v
		if !hasCreds {
			cfg.Gemini.Backend = BackendVertex
		}
	}
}
