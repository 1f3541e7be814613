package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/amishk599/tailor/internal/model"
)

const (
	anthropicBaseURL    = "https://api.anthropic.com/v1"
	anthropicAPIVersion = "2023-06-01"
	anthropicMaxTokens  = 8192
)

// AnthropicProvider calls the Anthropic /v1/messages endpoint.
type AnthropicProvider struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAnthropicProvider creates a provider targeting the Anthropic API. A nil
// httpClient gets a default with a generous timeout; resume generation is a
// long completion.
func NewAnthropicProvider(apiKey, modelName string, httpClient *http.Client) *AnthropicProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}
	return &AnthropicProvider{
		baseURL:    anthropicBaseURL,
		apiKey:     apiKey,
		model:      modelName,
		httpClient: httpClient,
	}
}

// messagesRequest mirrors the Anthropic /v1/messages request body.
type messagesRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse mirrors the relevant fields of the Anthropic response.
type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends the request and returns the concatenated text blocks. The
// messages API has no JSON response mode, so JSONResponse is enforced by the
// prompt and validated by the caller.
func (p *AnthropicProvider) Complete(ctx context.Context, req Request) (string, error) {
	reqBody := messagesRequest{
		Model:       p.model,
		MaxTokens:   anthropicMaxTokens,
		Temperature: req.Temperature,
		System:      req.System,
		Messages: []anthropicMessage{
			{Role: "user", Content: req.Prompt},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal llm request: %w", err)
	}

	url := p.baseURL + "/messages"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create llm request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicAPIVersion)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &model.ProviderError{Provider: model.ProviderAnthropic, Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read llm response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &model.ProviderError{
			Provider:   model.ProviderAnthropic,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBytes)),
		}
	}

	var msgResp messagesResponse
	if err := json.Unmarshal(respBytes, &msgResp); err != nil {
		return "", fmt.Errorf("parse llm response: %w", err)
	}
	if msgResp.Error != nil {
		return "", &model.ProviderError{
			Provider: model.ProviderAnthropic,
			Err:      fmt.Errorf("%s: %s", msgResp.Error.Type, msgResp.Error.Message),
		}
	}

	var out bytes.Buffer
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("anthropic returned no text content: %w", model.ErrEmptyResult)
	}
	return out.String(), nil
}
