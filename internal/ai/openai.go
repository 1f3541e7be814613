package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/amishk599/tailor/internal/model"
)

// OpenAIProvider calls the OpenAI chat completions API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a provider targeting the OpenAI API.
func NewOpenAIProvider(apiKey, modelName string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  modelName,
	}
}

// Complete sends the request and returns the first choice's content.
func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: float32(req.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.JSONResponse {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &model.ProviderError{
				Provider:   model.ProviderOpenAI,
				StatusCode: apiErr.HTTPStatusCode,
				Err:        err,
			}
		}
		return "", &model.ProviderError{Provider: model.ProviderOpenAI, Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices: %w", model.ErrEmptyResult)
	}
	return resp.Choices[0].Message.Content, nil
}
