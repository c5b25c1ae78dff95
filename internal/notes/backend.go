// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Backend abstracts the chat-completion API so tests can supply a mock.
// One call takes a rendered prompt and returns the model's text.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT4oMini

// OpenAIBackend calls the OpenAI chat-completion API.
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAIBackend builds a backend for the given API key and model.
// An empty model falls back to DefaultModel.
func NewOpenAIBackend(apiKey, model string) *OpenAIBackend {
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIBackend{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Complete sends the prompt as a single user message and returns the
// first choice's content.
func (o *OpenAIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}
	return content, nil
}
