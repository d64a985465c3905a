package ingest

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/algrano/yt-grano/internal/errors"
	"github.com/algrano/yt-grano/internal/model"
	"github.com/algrano/yt-grano/internal/repository/transcript"
	"github.com/algrano/yt-grano/internal/service/captions"
)

// AcquireOptions configures the acquisition state machine
type AcquireOptions struct {
	PreferredLangs []string // language preference for the structured captions API
	FallbackLangs  []string // ordered language priority for the yt-dlp fallback
	MaxRetries     int      // attempts against the primary source for transient errors
	BackoffBase    float64  // sleep backoff_base**attempt seconds between attempts
}

// TranscriptService acquires one canonical transcript for a video:
// cache lookup, then the structured captions API with retry and backoff,
// then the yt-dlp fallback when a page URL was supplied.
type TranscriptService interface {
	GetTranscript(ctx context.Context, videoID, pageURL string) ([]model.CaptionRow, error)
}

// transcriptService implements TranscriptService
type transcriptService struct {
	cache     transcript.Repository
	api       captions.TrackAPI
	extractor captions.Extractor
	opts      AcquireOptions
	sleep     func(time.Duration)
}

// NewTranscriptService creates a new TranscriptService
func NewTranscriptService(cache transcript.Repository, api captions.TrackAPI, extractor captions.Extractor, opts AcquireOptions) TranscriptService {
	return NewTranscriptServiceWithSleeper(cache, api, extractor, opts, time.Sleep)
}

// NewTranscriptServiceWithSleeper creates a new TranscriptService with a custom sleeper (for testing)
func NewTranscriptServiceWithSleeper(cache transcript.Repository, api captions.TrackAPI, extractor captions.Extractor, opts AcquireOptions, sleep func(time.Duration)) TranscriptService {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = 1.5
	}
	return &transcriptService{
		cache:     cache,
		api:       api,
		extractor: extractor,
		opts:      opts,
		sleep:     sleep,
	}
}

// GetTranscript walks CACHE_LOOKUP -> PRIMARY_FETCH -> FALLBACK_FETCH.
// A cache hit is authoritative and short-circuits without any network call.
func (s *transcriptService) GetTranscript(ctx context.Context, videoID, pageURL string) ([]model.CaptionRow, error) {
	if videoID == "" {
		return nil, errors.New(errors.CodeInvalidArg, "video ID is required")
	}

	// CACHE_LOOKUP: any load failure (absent, corrupted) is a plain miss
	if rows, err := s.cache.Load(ctx, videoID); err == nil {
		return rows, nil
	}

	// PRIMARY_FETCH
	rows, primaryErr := s.fetchPrimary(ctx, videoID)
	if primaryErr == nil {
		s.persist(ctx, videoID, rows)
		return rows, nil
	}

	// FALLBACK_FETCH: only entered when the caller supplied a page URL
	if pageURL == "" {
		return nil, errors.Wrap(primaryErr, errors.CodeExhausted,
			"no captions acquired: captions API failed and no fallback URL was supplied")
	}

	rows, fallbackErr := s.extractor.Download(ctx, pageURL, s.opts.FallbackLangs)
	if fallbackErr != nil {
		return nil, errors.Wrap(fallbackErr, errors.CodeExhausted,
			fmt.Sprintf("no captions acquired through any path (captions API: %v)", primaryErr))
	}

	s.persist(ctx, videoID, rows)
	return rows, nil
}

// fetchPrimary lists tracks, selects one per the language policy and fetches
// its rows. NotAvailable errors and a missing policy match are terminal for
// this source; transient errors are retried with exponential backoff.
func (s *transcriptService) fetchPrimary(ctx context.Context, videoID string) ([]model.CaptionRow, error) {
	var lastErr error
	for attempt := 0; attempt < s.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			s.sleep(s.backoff(attempt - 1))
		}

		tracks, err := s.api.ListTracks(ctx, videoID)
		if err != nil {
			if errors.IsNotAvailable(err) {
				return nil, err
			}
			lastErr = err
			continue
		}

		track := captions.SelectTrack(tracks, s.opts.PreferredLangs)
		if track == nil {
			return nil, errors.New(errors.CodeNotAvailable,
				"no human-authored caption track matches the preferred languages")
		}

		rows, err := s.api.FetchTrack(ctx, *track)
		if err != nil {
			if errors.IsNotAvailable(err) {
				return nil, err
			}
			lastErr = err
			continue
		}
		return rows, nil
	}
	return nil, lastErr
}

// backoff returns backoff_base**attempt seconds, no jitter
func (s *transcriptService) backoff(attempt int) time.Duration {
	return time.Duration(math.Pow(s.opts.BackoffBase, float64(attempt)) * float64(time.Second))
}

// persist is best-effort: the rows are already in memory and a broken
// cache must not fail the acquisition.
func (s *transcriptService) persist(ctx context.Context, videoID string, rows []model.CaptionRow) {
	_ = s.cache.Save(ctx, videoID, rows)
}
