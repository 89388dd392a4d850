package claude

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

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

// BackendName is the identifier this provider registers under.
const BackendName = "claude"

// caller implements backend.Caller using the Anthropic Messages API.
type caller struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewBackend creates a Claude extraction backend from a provider config.
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
		model = "claude-3-sonnet-20240229"
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
	contentBlocks, err := buildContentBlocks(doc)
	if err != nil {
		return nil, 0, err
	}

	reqBody := map[string]interface{}{
		"model":       c.model,
		"max_tokens":  2000,
		"temperature": 0.1,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": contentBlocks,
			},
		},
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
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return parseResponse(respBody)
}

func buildContentBlocks(doc domain.Document) ([]map[string]interface{}, error) {
	prompt := backend.BuildExtractionPrompt()
	encoded := base64.StdEncoding.EncodeToString(doc.Bytes)

	var blocks []map[string]interface{}
	switch doc.ContentType {
	case "application/pdf":
		blocks = append(blocks, map[string]interface{}{
			"type": "document",
			"source": map[string]interface{}{
				"type":       "base64",
				"media_type": "application/pdf",
				"data":       encoded,
			},
		})
	case "image/jpeg", "image/png", "image/gif":
		blocks = append(blocks, map[string]interface{}{
			"type": "image",
			"source": map[string]interface{}{
				"type":       "base64",
				"media_type": doc.ContentType,
				"data":       encoded,
			},
		})
	default:
		return nil, fmt.Errorf("unsupported content type for extraction: %s", doc.ContentType)
	}

	blocks = append(blocks, map[string]interface{}{
		"type": "text",
		"text": prompt,
	})
	return blocks, nil
}

// anthropicResponse models the Messages API response.
type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func parseResponse(body []byte) (domain.Fields, float64, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("unmarshaling response: %w", err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content = block.Text
			break
		}
	}
	if content == "" {
		return nil, 0, fmt.Errorf("empty response: no text content returned")
	}

	fields, confidence := backend.DecodeModelContent(content)
	return fields, confidence, nil
}
