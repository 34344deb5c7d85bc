package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient implements Provider using the Gemini API.
type GeminiClient struct {
	client *genai.Client
}

// GeminiDialer returns a Dialer creating Gemini clients. httpClient may be nil.
func GeminiDialer(httpClient *http.Client) Dialer {
	return func(ctx context.Context, credential string) (Provider, error) {
		c, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:     credential,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini: create client: %w", err)
		}
		return &GeminiClient{client: c}, nil
	}
}

func (g *GeminiClient) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var out []ModelInfo
	for m, err := range g.client.Models.All(ctx) {
		if err != nil {
			return nil, geminiError("list models", err)
		}
		if m == nil {
			continue
		}
		out = append(out, ModelInfo{
			Name:        m.Name,
			CanGenerate: slices.Contains(m.SupportedActions, "generateContent"),
		})
	}
	return out, nil
}

func (g *GeminiClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.4),
	})
	if err != nil {
		return "", geminiError("generate", err)
	}
	return resp.Text(), nil
}

// geminiError marks credential rejections with ErrUnauthorized.
func geminiError(op string, err error) error {
	code, msg := 0, ""
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code, msg = apiErr.Code, apiErr.Message
	case errors.As(err, &apiErrPtr):
		code, msg = apiErrPtr.Code, apiErrPtr.Message
	}
	if code == http.StatusUnauthorized || code == http.StatusForbidden ||
		(code == http.StatusBadRequest && strings.Contains(strings.ToLower(msg), "api key")) {
		return fmt.Errorf("gemini: %s: %w: %s", op, ErrUnauthorized, msg)
	}
	return fmt.Errorf("gemini: %s: %w", op, err)
}
