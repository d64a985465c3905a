package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/algrano/yt-grano/internal/errors"
)

// ollamaEmbedder implements Embedder against the Ollama /api/embed endpoint
type ollamaEmbedder struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaEmbedder creates an embedder targeting the given Ollama instance
func NewOllamaEmbedder(baseURL, model string) Embedder {
	return NewOllamaEmbedderWithClient(baseURL, model, &http.Client{Timeout: 120 * time.Second})
}

// NewOllamaEmbedderWithClient creates an embedder with a custom HTTP client (for testing)
func NewOllamaEmbedderWithClient(baseURL, model string, client *http.Client) Embedder {
	return &ollamaEmbedder{
		baseURL: baseURL,
		model:   model,
		client:  client,
	}
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed sends a batch of texts and returns their vectors in input order.
// A response whose embedding count disagrees with the input length is an error.
func (e *ollamaEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(embedRequest{Model: e.model, Input: texts})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to marshal embed request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to build embed request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "embedding request failed (is Ollama running?)")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, errors.New(errors.CodeExternal,
			fmt.Sprintf("embedding endpoint returned %d: %s", resp.StatusCode, string(respBody)))
	}

	var result embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to decode embed response")
	}

	if len(result.Embeddings) != len(texts) {
		return nil, errors.New(errors.CodeExternal,
			fmt.Sprintf("expected %d embeddings, got %d", len(texts), len(result.Embeddings)))
	}
	return result.Embeddings, nil
}

// EmbedOne embeds a single text
func (e *ollamaEmbedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}
