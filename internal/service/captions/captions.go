// Package captions acquires raw caption rows for a video from two
// interchangeable providers: the structured captions API (track listing +
// timedtext fetch) and a generic yt-dlp subtitle extraction fallback.
package captions

import (
	"context"
	"strings"

	"github.com/algrano/yt-grano/internal/model"
)

// TrackAPI is the structured captions provider: list the available tracks
// for a video, then fetch the rows of a chosen track.
type TrackAPI interface {
	// ListTracks returns the caption tracks available for a video.
	// Videos with captions disabled or not found yield CodeNotAvailable;
	// network or rate-limit failures yield CodeTransient.
	ListTracks(ctx context.Context, videoID string) ([]model.CaptionTrack, error)
	// FetchTrack downloads and parses the rows of one track.
	FetchTrack(ctx context.Context, track model.CaptionTrack) ([]model.CaptionRow, error)
}

// Extractor is the generic extraction provider: given a watch page URL and
// an ordered list of language codes, download a subtitle file per language
// and return the rows of the first language that yields any.
type Extractor interface {
	Download(ctx context.Context, pageURL string, langs []string) ([]model.CaptionRow, error)
}

// normalizeSpace collapses runs of whitespace into single spaces and trims.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
