package transcript

import (
	"context"

	"github.com/algrano/yt-grano/internal/model"
)

// Repository defines operations for cached transcript persistence.
// An entry, once present, is a complete previously-validated transcript:
// downstream code treats a cache hit as authoritative and never re-fetches.
type Repository interface {
	// Load returns the cached caption rows for a video, or CodeNotFound
	// when absent. An unreadable entry is also reported as CodeNotFound
	// so callers treat corruption as a plain cache miss.
	Load(ctx context.Context, videoID string) ([]model.CaptionRow, error)
	// Save persists caption rows under the video ID, overwriting any
	// previous entry. Callers ignore failures: the rows are already in
	// memory and a broken cache must not fail the acquisition.
	Save(ctx context.Context, videoID string, rows []model.CaptionRow) error
	// Delete removes the cached entry for a video.
	Delete(ctx context.Context, videoID string) error
}
