package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/auth/credentials"
	"github.com/nguyentantai21042004/needle-flow/internal/config"
	"github.com/nguyentantai21042004/needle-flow/internal/logger"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

type implAnalyzer struct {
	backend    string
	model      string
	generators []contentGenerator
	current    int
	limiter    *rate.Limiter
	timeout    time.Duration
	logger     logger.Logger
}

// New opens Gen AI clients for the configured backend. The Gemini API backend
// gets one client per API key so quota errors can rotate to the next key.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (Analyzer, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}

	var generators []contentGenerator
	switch cfg.Gemini.Backend {
	case config.BackendVertex:
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes:          []string{cloudPlatformScope},
			CredentialsFile: cfg.Gemini.CredentialsFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load GCP credentials: %v", ErrMissingCredentials, err)
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			Backend:     genai.BackendVertexAI,
			Project:     cfg.Gemini.Project,
			Location:    cfg.Gemini.Location,
			Credentials: creds,
		})
		if err != nil {
			return nil, fmt.Errorf("create vertex client: %w", err)
		}
		generators = append(generators, client.Models)

	default:
		for _, key := range cfg.Gemini.APIKeys {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  key,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				return nil, fmt.Errorf("create client: %w", err)
			}
			generators = append(generators, client.Models)
		}
	}

	log.Info(ctx, "Gen AI client ready (backend: %s, model: %s, keys: %d)", cfg.Gemini.Backend, cfg.Gemini.Model, len(generators))
	return newWithGenerators(cfg.Gemini.Backend, cfg.Gemini.Model, generators, cfg.Gemini.RequestsPerMinute, cfg.Gemini.Timeout, log), nil
}

func newWithGenerators(backend, model string, generators []contentGenerator, perMinute int, timeout time.Duration, log logger.Logger) *implAnalyzer {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &implAnalyzer{
		backend:    backend,
		model:      model,
		generators: generators,
		limiter:    rate.NewLimiter(limit, 1),
		timeout:    timeout,
		logger:     log,
	}
}
