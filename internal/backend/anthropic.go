package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/agbru/aicompare/internal/errors"
)

const (
	// anthropicVersion is the API version header required on every call.
	anthropicVersion = "2023-06-01"
	// defaultMaxTokens bounds the response when the catalog sets no limit.
	defaultMaxTokens = 1024
)

// anthropicRequest is the request body for the Anthropic messages API.
type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse is the subset of the messages response we consume.
type anthropicResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// AnthropicClient speaks the Anthropic messages protocol.
type AnthropicClient struct {
	info       Info
	baseURL    string
	model      string
	apiKey     string
	maxTokens  int
	httpClient *http.Client
}

var _ Client = (*AnthropicClient)(nil)

// AnthropicOptions configures an AnthropicClient.
type AnthropicOptions struct {
	// Info is the backend's identity.
	Info Info
	// BaseURL is the API root, e.g. "https://api.anthropic.com/v1".
	BaseURL string
	// Model is the model name sent with every request.
	Model string
	// APIKey is sent as the x-api-key header.
	APIKey string
	// MaxTokens caps the response length; defaults to 1024.
	MaxTokens int
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// NewAnthropicClient builds a client for the Anthropic messages API.
func NewAnthropicClient(opts AnthropicOptions) *AnthropicClient {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &AnthropicClient{
		info:       opts.Info,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		model:      opts.Model,
		apiKey:     opts.APIKey,
		maxTokens:  maxTokens,
		httpClient: newHTTPClient(opts.HTTPClient),
	}
}

// Identify returns the backend's static identity.
func (c *AnthropicClient) Identify() Info { return c.info }

// Submit sends the prompt as a single user message and returns the
// concatenated text content of the response.
func (c *AnthropicClient) Submit(ctx context.Context, prompt string) (string, error) {
	reqBody := anthropicRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperrors.NewBackendError(c.info.ID, apperrors.KindUnavailable, err)
	}

	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}

	body, err := doJSONPost(ctx, c.httpClient, c.info.ID, c.baseURL+"/messages", headers, payload)
	if err != nil {
		return "", err
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", apperrors.NewBackendError(c.info.ID, apperrors.KindUnavailable, err)
	}

	var sb strings.Builder
	for _, content := range apiResp.Content {
		if content.Type == "text" {
			sb.WriteString(content.Text)
		}
	}
	if sb.Len() == 0 {
		return "", apperrors.NewBackendError(c.info.ID, apperrors.KindUnavailable, errors.New("response carried no text content"))
	}
	return sb.String(), nil
}
