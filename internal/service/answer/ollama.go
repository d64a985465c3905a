package answer

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

// Message is a single chat message sent to the generation endpoint
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator produces free text from a conversation. Decoding must be
// deterministic so the same question over the same index yields the
// same answer.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// ollamaGenerator implements Generator against the Ollama /api/chat endpoint
type ollamaGenerator struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaGenerator creates a generator targeting the given Ollama instance
func NewOllamaGenerator(baseURL, model string) Generator {
	return NewOllamaGeneratorWithClient(baseURL, model, &http.Client{Timeout: 5 * time.Minute})
}

// NewOllamaGeneratorWithClient creates a generator with a custom HTTP client (for testing)
func NewOllamaGeneratorWithClient(baseURL, model string, client *http.Client) Generator {
	return &ollamaGenerator{
		baseURL: baseURL,
		model:   model,
		client:  client,
	}
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options"`
}

type chatResponse struct {
	Message Message `json:"message"`
}

func (g *ollamaGenerator) Generate(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    g.model,
		Messages: messages,
		Stream:   false,
		// greedy decoding with a pinned seed for reproducible answers
		Options: map[string]any{"temperature": 0, "seed": 42},
	})
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to build chat request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeExternal, "generation request failed (is Ollama running?)")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", errors.New(errors.CodeExternal,
			fmt.Sprintf("generation endpoint returned %d: %s", resp.StatusCode, string(respBody)))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrap(err, errors.CodeExternal, "failed to decode chat response")
	}
	return result.Message.Content, nil
}
