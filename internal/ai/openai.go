package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Provider using the OpenAI Chat Completions API
// or any compatible endpoint.
type OpenAIClient struct {
	client *openai.Client
}

// OpenAIDialer returns a Dialer for OpenAI. baseURL is optional.
func OpenAIDialer(baseURL string) Dialer {
	return func(_ context.Context, credential string) (Provider, error) {
		var c *openai.Client
		if baseURL != "" {
			cc := openai.DefaultConfig(credential)
			cc.BaseURL = baseURL
			c = openai.NewClientWithConfig(cc)
		} else {
			c = openai.NewClient(credential)
		}
		return &OpenAIClient{client: c}, nil
	}
}

// non-chat model families listed by /v1/models
var openaiNonChat = []string{"embedding", "whisper", "tts", "dall-e", "moderation", "davinci", "babbage", "transcribe", "image", "realtime", "audio"}

func (o *OpenAIClient) ListModels(ctx context.Context) ([]ModelInfo, error) {
	resp, err := o.client.ListModels(ctx)
	if err != nil {
		return nil, openaiError("list models", err)
	}
	out := make([]ModelInfo, 0, len(resp.Models))
	for _, m := range resp.Models {
		capable := true
		for _, bad := range openaiNonChat {
			if strings.Contains(m.ID, bad) {
				capable = false
				break
			}
		}
		out = append(out, ModelInfo{Name: m.ID, CanGenerate: capable})
	}
	return out, nil
}

func (o *OpenAIClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a careful news analyst. Answer with a single JSON object only."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", openaiError("chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func openaiError(op string, err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return fmt.Errorf("openai: %s: %w: %v", op, ErrUnauthorized, err)
	}
	return fmt.Errorf("openai: %s: %w", op, err)
}
