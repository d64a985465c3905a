package ingest

import (
	"context"

	"github.com/algrano/yt-grano/internal/model"
	"github.com/algrano/yt-grano/internal/repository/video"
	"github.com/algrano/yt-grano/internal/service/embedding"
	"github.com/algrano/yt-grano/internal/service/youtube"
	"github.com/algrano/yt-grano/internal/store"
)

// IndexOptions configures segmentation
type IndexOptions struct {
	WindowSec  float64
	OverlapSec float64
}

// IndexResult summarizes one indexing run
type IndexResult struct {
	Video  model.Video
	Chunks int
}

// Indexer runs the full pipeline for one video: acquire the transcript,
// segment it, embed the chunks and upsert everything into the vector store.
type Indexer interface {
	Index(ctx context.Context, videoURL string) (*IndexResult, error)
}

// indexer implements Indexer
type indexer struct {
	youtube     youtube.Service
	transcripts TranscriptService
	videos      video.Repository
	embedder    embedding.Embedder
	store       store.Store
	opts        IndexOptions
}

// NewIndexer creates a new Indexer
func NewIndexer(yt youtube.Service, transcripts TranscriptService, videos video.Repository, embedder embedding.Embedder, st store.Store, opts IndexOptions) Indexer {
	return &indexer{
		youtube:     yt,
		transcripts: transcripts,
		videos:      videos,
		embedder:    embedder,
		store:       st,
		opts:        opts,
	}
}

func (ix *indexer) Index(ctx context.Context, videoURL string) (*IndexResult, error) {
	videoID, err := youtube.ParseVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	// metadata is cosmetic, a yt-dlp failure here must not block indexing
	v, err := ix.youtube.FetchVideoInfo(ctx, videoURL)
	if err != nil {
		v = &model.Video{ID: videoID, Title: "YouTube video", URL: youtube.WatchURL(videoID, 0)}
	}

	rows, err := ix.transcripts.GetTranscript(ctx, videoID, videoURL)
	if err != nil {
		return nil, err
	}

	chunks, err := Segment(rows, ix.opts.WindowSec, ix.opts.OverlapSec)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	embeddings, err := ix.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	if err := ix.videos.Upsert(ctx, v); err != nil {
		return nil, err
	}
	if err := ix.store.UpsertVideo(*v, "auto", chunks, embeddings); err != nil {
		return nil, err
	}

	return &IndexResult{Video: *v, Chunks: len(chunks)}, nil
}
