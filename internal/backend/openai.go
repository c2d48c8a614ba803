package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/agbru/aicompare/internal/errors"
)

// openAIRequest is the request body for OpenAI-compatible chat-completions
// APIs, which also covers Ollama and most local inference servers.
type openAIRequest struct {
	Model    string              `json:"model"`
	Messages []map[string]string `json:"messages"`
}

// openAIResponse is the subset of the chat-completions response we consume.
type openAIResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// OpenAIClient speaks the OpenAI-compatible chat-completions protocol.
type OpenAIClient struct {
	info       Info
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ Client = (*OpenAIClient)(nil)

// OpenAIOptions configures an OpenAIClient.
type OpenAIOptions struct {
	// Info is the backend's identity.
	Info Info
	// BaseURL is the API root, e.g. "https://api.openai.com/v1".
	BaseURL string
	// Model is the model name sent with every request.
	Model string
	// APIKey is the bearer token; empty for local servers that need none.
	APIKey string
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// NewOpenAIClient builds a client for an OpenAI-compatible endpoint.
func NewOpenAIClient(opts OpenAIOptions) *OpenAIClient {
	return &OpenAIClient{
		info:       opts.Info,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		model:      opts.Model,
		apiKey:     opts.APIKey,
		httpClient: newHTTPClient(opts.HTTPClient),
	}
}

// Identify returns the backend's static identity.
func (c *OpenAIClient) Identify() Info { return c.info }

// Submit sends the prompt as a single user message and returns the first
// choice's content.
func (c *OpenAIClient) Submit(ctx context.Context, prompt string) (string, error) {
	reqBody := openAIRequest{
		Model: c.model,
		Messages: []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperrors.NewBackendError(c.info.ID, apperrors.KindUnavailable, err)
	}

	headers := map[string]string{}
	if c.apiKey != "" {
		headers["Authorization"] = "Bearer " + c.apiKey
	}

	body, err := doJSONPost(ctx, c.httpClient, c.info.ID, c.baseURL+"/chat/completions", headers, payload)
	if err != nil {
		return "", err
	}

	var apiResp openAIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", apperrors.NewBackendError(c.info.ID, apperrors.KindUnavailable, err)
	}
	if len(apiResp.Choices) == 0 {
		return "", apperrors.NewBackendError(c.info.ID, apperrors.KindUnavailable, errors.New("response carried no choices"))
	}
	return apiResp.Choices[0].Message.Content, nil
}
