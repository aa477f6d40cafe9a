package analyzer

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/needle-flow/internal/config"
	"google.golang.org/genai"
)

var (
	// ErrMissingCredentials means the selected backend cannot be used as configured.
	ErrMissingCredentials = config.ErrMissingCredentials
	// ErrEmptyResponse is returned when the model answers without any text.
	ErrEmptyResponse = errors.New("empty response from Gemini")
)

// Analyzer sends an audio clip and a prompt to a generative model.
type Analyzer interface {
	Analyze(ctx context.Context, audio []byte, prompt string) (string, error)
	Model() string
}

// contentGenerator is the slice of *genai.Models the analyzer uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}
