package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"opslink/internal/backend"
	"opslink/internal/config"
	"opslink/internal/domain"
	"opslink/internal/port"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// BackendName is the identifier this provider registers under.
const BackendName = "gpt4v"

// caller implements backend.Caller using the OpenAI Chat Completions API
// with vision input.
type caller struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewBackend creates a GPT-4V extraction backend from a provider config.
func NewBackend(cfg *config.BackendConfig) (port.Backend, error) {
	return newBackend(cfg, apiURL), nil
}

// NewBackendWithEndpoint creates a backend pointing at a custom API endpoint
// (for testing).
func NewBackendWithEndpoint(cfg *config.BackendConfig, endpoint string) port.Backend {
	return newBackend(cfg, endpoint)
}

func newBackend(cfg *config.BackendConfig, endpoint string) port.Backend {
	model := cfg.Model
	if model == "" {
		model = "gpt-4-vision-preview"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return backend.NewAdapter(BackendName, &caller{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	})
}

func (c *caller) Model() string {
	return c.model
}

func (c *caller) Call(ctx context.Context, doc domain.Document) (domain.Fields, float64, error) {
	if _, ok := domain.AllowedContentTypes[doc.ContentType]; !ok {
		return nil, 0, fmt.Errorf("unsupported content type for extraction: %s", doc.ContentType)
	}

	encoded := base64.StdEncoding.EncodeToString(doc.Bytes)
	reqBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": backend.BuildExtractionPrompt(),
					},
					{
						"type": "image_url",
						"image_url": map[string]interface{}{
							"url":    fmt.Sprintf("data:%s;base64,%s", doc.ContentType, encoded),
							"detail": "high",
						},
					},
				},
			},
		},
		"max_tokens":  2000,
		"temperature": 0.1,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return parseResponse(respBody)
}

// openaiResponse models the Chat Completions API response.
type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func parseResponse(body []byte) (domain.Fields, float64, error) {
	var resp openaiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, 0, fmt.Errorf("empty response: no choices returned")
	}
	fields, confidence := backend.DecodeModelContent(resp.Choices[0].Message.Content)
	return fields, confidence, nil
}
