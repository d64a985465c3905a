// Package answer turns a question over an indexed video into a short
// grounded answer with timestamped citations: embed the question, search
// the vector store, post-process the hits (time dedup, relevance gate)
// and generate from the surviving context.
package answer

import (
	"context"
	"strings"

	"github.com/algrano/yt-grano/internal/model"
	"github.com/algrano/yt-grano/internal/service/embedding"
	"github.com/algrano/yt-grano/internal/store"
)

// AskOptions configures retrieval and post-processing
type AskOptions struct {
	TopK      int     // neighbours fetched from the vector store
	CtxMax    int     // hits handed to the generator as context
	CiteK     int     // citations shown to the user
	MinScore  float64 // relevance gate on the best hit
	MinGapSec float64 // time dedup window between kept hits
}

// Service answers questions about an indexed video
type Service interface {
	Ask(ctx context.Context, videoID, question string) (model.Answer, error)
}

// service implements Service
type service struct {
	embedder  embedding.Embedder
	store     store.Store
	generator Generator
	opts      AskOptions
}

// NewService creates a new answer Service
func NewService(embedder embedding.Embedder, st store.Store, generator Generator, opts AskOptions) Service {
	return &service{
		embedder:  embedder,
		store:     st,
		generator: generator,
		opts:      opts,
	}
}

// Ask runs one retrieval-to-answer cycle. Weak retrieval and generation
// failures both produce a canonical refusal rather than an error; only
// embedding and store failures are surfaced.
func (s *service) Ask(ctx context.Context, videoID, question string) (model.Answer, error) {
	qVec, err := s.embedder.EmbedOne(ctx, question)
	if err != nil {
		return model.Answer{}, err
	}

	hits, err := s.store.Search(qVec, s.opts.TopK, videoID)
	if err != nil {
		return model.Answer{}, err
	}

	hits = DedupHitsByTime(hits, s.opts.MinGapSec)
	if len(hits) == 0 || MaxScore(hits) < s.opts.MinScore {
		return model.Answer{Text: refusalFor(question)}, nil
	}

	text, err := s.generator.Generate(ctx, buildMessages(question, hits, s.opts.CtxMax))
	if err != nil {
		return model.Answer{Text: refusalFor(question)}, nil
	}

	text = sanitize(text)
	if text == "" || IsRefusal(text) {
		// a refusal never carries citations
		return model.Answer{Text: refusalFor(question)}, nil
	}

	return model.Answer{
		Text:      text,
		Citations: BuildCitations(hits, s.opts.CiteK),
	}, nil
}

// sanitize flattens the generated text into one paragraph
func sanitize(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\n\n", " ")
	return strings.Join(strings.Fields(text), " ")
}
