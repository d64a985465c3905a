// Package embedding turns chunk text into dense vectors through an
// Ollama-compatible embedding endpoint.
package embedding

import "context"

// Embedder produces one vector per input text, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedOne(ctx context.Context, text string) ([]float32, error)
}
