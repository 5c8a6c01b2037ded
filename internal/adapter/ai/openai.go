package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ugalabz/oracle-server/internal/port"
)

// Config holds the OpenAI endpoint configuration. The embedding model and
// its output dimensionality are pinned: stored vectors are only comparable
// to query vectors produced by the same model at the same dimension.
type Config struct {
	BaseURL        string // e.g. https://api.openai.com/v1
	APIKey         string
	EmbedModel     string // e.g. text-embedding-3-large
	EmbedDimension int    // e.g. 3072
	ChatModel      string // e.g. gpt-4o
	Timeout        time.Duration
}

// OpenAIProvider implements port.AIProvider using the OpenAI REST API.
type OpenAIProvider struct {
	cfg        Config
	httpClient *http.Client
}

// NewOpenAIProvider creates an OpenAI-backed AI provider.
func NewOpenAIProvider(cfg Config) *OpenAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &OpenAIProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Embed generates a vector embedding for the given text.
func (o *OpenAIProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	payload := map[string]interface{}{
		"model":      o.cfg.EmbedModel,
		"input":      text,
		"dimensions": o.cfg.EmbedDimension,
	}

	body, err := o.post(ctx, "/embeddings", payload)
	if err != nil {
		return nil, fmt.Errorf("%w: openai embed: %v", port.ErrEmbeddingUnavailable, err)
	}

	var resp struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: openai embed decode: %v", port.ErrEmbeddingUnavailable, err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: openai embed: empty response", port.ErrEmbeddingUnavailable)
	}

	return resp.Data[0].Embedding, nil
}

// Chat sends a non-streaming chat completion and returns the reply text.
func (o *OpenAIProvider) Chat(ctx context.Context, req port.ChatRequest) (string, error) {
	payload := map[string]interface{}{
		"model": o.cfg.ChatModel,
		"messages": []map[string]string{
			{"role": "system", "content": req.SystemPrompt},
			{"role": "user", "content": req.UserMessage},
		},
		"max_tokens":  req.MaxTokens,
		"temperature": req.Temperature,
		"stream":      false,
	}

	body, err := o.post(ctx, "/chat/completions", payload)
	if err != nil {
		return "", fmt.Errorf("%w: openai chat: %v", port.ErrProviderUnavailable, err)
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: openai chat decode: %v", port.ErrProviderUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai chat: no choices", port.ErrProviderUnavailable)
	}

	return resp.Choices[0].Message.Content, nil
}

// post is a helper for POST requests to the OpenAI API.
func (o *OpenAIProvider) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.BaseURL+path, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openai API error (%d): %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
