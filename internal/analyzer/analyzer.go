package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const audioMIMEType = "audio/mpeg"

func (a *implAnalyzer) Model() string { return a.model }

// Analyze sends the MP3 bytes followed by the prompt and returns the trimmed answer.
// On the Gemini API backend, 429 / quota errors rotate to the next API key.
func (a *implAnalyzer) Analyze(ctx context.Context, audio []byte, prompt string) (string, error) {
	if len(audio) == 0 {
		return "", errors.New("empty audio payload")
	}
	if len(a.generators) == 0 {
		return "", ErrMissingCredentials
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(audio, audioMIMEType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	var lastErr error
	for range len(a.generators) {
		if err := a.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}

		result, err := a.generate(ctx, contents)
		if err != nil {
			if isQuotaError(err) && len(a.generators) > 1 {
				a.logger.Warn(ctx, "Key %d rate limited, rotating...", a.current+1)
				a.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		text := strings.TrimSpace(responseText(result))
		if text == "" {
			return "", ErrEmptyResponse
		}
		return text, nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (a *implAnalyzer) generate(ctx context.Context, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return a.generators[a.current].GenerateContent(ctx, a.model, contents, nil)
}

func (a *implAnalyzer) rotateKey() {
	a.current = (a.current + 1) % len(a.generators)
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
