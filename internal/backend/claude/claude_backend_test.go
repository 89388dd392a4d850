package claude_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opslink/internal/backend/claude"
	"opslink/internal/config"
	"opslink/internal/domain"
)

func pdfDoc() domain.Document {
	return domain.Document{
		FileName:    "contract.pdf",
		ContentType: "application/pdf",
		Size:        8,
		Bytes:       []byte("%PDF-1.4"),
	}
}

func messagesResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": text},
		},
	}
}

func TestExtract_Success(t *testing.T) {
	var gotKey, gotVersion string
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Content []struct {
				Type string `json:"type"`
			} `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(messagesResponse(`{"data": {"party": "Acme Corp"}, "confidence": 0.88}`))
	}))
	defer server.Close()

	b := claude.NewBackendWithEndpoint(&config.BackendConfig{APIKey: "sk-ant-test", Model: "claude-3-sonnet-20240229"}, server.URL)
	result := b.Extract(context.Background(), pdfDoc())

	assert.True(t, result.Success)
	assert.Equal(t, claude.BackendName, result.Backend)
	assert.Equal(t, 0.88, result.Confidence)
	assert.Equal(t, "Acme Corp", result.Fields["party"])

	assert.Equal(t, "sk-ant-test", gotKey)
	assert.Equal(t, "2023-06-01", gotVersion)
	require.Len(t, gotBody.Messages, 1)
	require.Len(t, gotBody.Messages[0].Content, 2)
	assert.Equal(t, "document", gotBody.Messages[0].Content[0].Type)
	assert.Equal(t, "text", gotBody.Messages[0].Content[1].Type)
}

func TestExtract_ImageUsesImageBlock(t *testing.T) {
	var gotBody struct {
		Messages []struct {
			Content []struct {
				Type   string `json:"type"`
				Source struct {
					MediaType string `json:"media_type"`
				} `json:"source"`
			} `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(messagesResponse(`{"data": {}}`))
	}))
	defer server.Close()

	b := claude.NewBackendWithEndpoint(&config.BackendConfig{APIKey: "sk-ant-test"}, server.URL)
	result := b.Extract(context.Background(), domain.Document{
		FileName:    "photo.jpg",
		ContentType: "image/jpeg",
		Bytes:       []byte{0xff, 0xd8},
	})

	assert.True(t, result.Success)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "image", gotBody.Messages[0].Content[0].Type)
	assert.Equal(t, "image/jpeg", gotBody.Messages[0].Content[0].Source.MediaType)
}

func TestExtract_APIErrorBecomesFailedResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"type": "overloaded_error"}}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	b := claude.NewBackendWithEndpoint(&config.BackendConfig{APIKey: "sk-ant-test"}, server.URL)
	result := b.Extract(context.Background(), pdfDoc())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "status 503")
}

func TestExtract_NoTextContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"content": []interface{}{}})
	}))
	defer server.Close()

	b := claude.NewBackendWithEndpoint(&config.BackendConfig{APIKey: "sk-ant-test"}, server.URL)
	result := b.Extract(context.Background(), pdfDoc())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "no text content")
}

func TestExtract_UnsupportedWordDocumentRejected(t *testing.T) {
	b := claude.NewBackendWithEndpoint(&config.BackendConfig{APIKey: "sk-ant-test"}, "http://unused")

	result := b.Extract(context.Background(), domain.Document{
		FileName:    "notes.docx",
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Bytes:       []byte("PK"),
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "unsupported content type")
}
