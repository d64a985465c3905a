package captions

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/algrano/yt-grano/internal/errors"
	"github.com/algrano/yt-grano/internal/model"
)

const (
	watchURLFormat = "https://www.youtube.com/watch?v=%s&hl=en"
	userAgent      = "Mozilla/5.0"

	captionTracksKey = `"captionTracks":`
)

// apiSource implements TrackAPI against the watch-page player response.
type apiSource struct {
	client *http.Client
}

// NewAPISource creates a TrackAPI backed by the public watch page
func NewAPISource() TrackAPI {
	return NewAPISourceWithClient(&http.Client{Timeout: 30 * time.Second})
}

// NewAPISourceWithClient creates a TrackAPI with a custom HTTP client (for testing)
func NewAPISourceWithClient(client *http.Client) TrackAPI {
	return &apiSource{client: client}
}

// captionTrackJSON mirrors one entry of the player response's captionTracks array
type captionTrackJSON struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" marks auto-generated tracks
	Name         struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
}

// ListTracks fetches the watch page and extracts the available caption tracks
func (s *apiSource) ListTracks(ctx context.Context, videoID string) ([]model.CaptionTrack, error) {
	if videoID == "" {
		return nil, errors.New(errors.CodeInvalidArg, "video ID is required")
	}

	body, err := s.get(ctx, fmt.Sprintf(watchURLFormat, videoID))
	if err != nil {
		return nil, err
	}

	idx := strings.Index(body, captionTracksKey)
	if idx < 0 {
		// No caption renderer in the player response: captions are
		// disabled or the video does not exist. Terminal, not retried.
		return nil, errors.New(errors.CodeNotAvailable, "no caption tracks available for video "+videoID)
	}

	var raw []captionTrackJSON
	dec := json.NewDecoder(strings.NewReader(body[idx+len(captionTracksKey):]))
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to parse caption track list")
	}
	if len(raw) == 0 {
		return nil, errors.New(errors.CodeNotAvailable, "caption track list is empty for video "+videoID)
	}

	tracks := make([]model.CaptionTrack, 0, len(raw))
	for _, t := range raw {
		tracks = append(tracks, model.CaptionTrack{
			LanguageCode: t.LanguageCode,
			Name:         t.Name.SimpleText,
			IsGenerated:  t.Kind == "asr",
			BaseURL:      t.BaseURL,
		})
	}
	return tracks, nil
}

// timedText mirrors the timedtext XML body returned by a track's base URL
type timedText struct {
	XMLName xml.Name       `xml:"transcript"`
	Texts   []timedTextRow `xml:"text"`
}

type timedTextRow struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Content  string  `xml:",chardata"`
}

// FetchTrack downloads the timedtext document for a track and parses its rows
func (s *apiSource) FetchTrack(ctx context.Context, track model.CaptionTrack) ([]model.CaptionRow, error) {
	if track.BaseURL == "" {
		return nil, errors.New(errors.CodeInvalidArg, "track has no fetch URL")
	}

	body, err := s.get(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}

	var doc timedText
	if err := xml.Unmarshal([]byte(body), &doc); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to parse timedtext response")
	}

	rows := make([]model.CaptionRow, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := normalizeSpace(html.UnescapeString(t.Content))
		if text == "" {
			continue
		}
		rows = append(rows, model.CaptionRow{
			Text:     text,
			Start:    t.Start,
			Duration: t.Duration,
		})
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.CodeNotAvailable, "caption track contains no usable rows")
	}
	return rows, nil
}

// get performs one HTTP GET, classifying failures into the retry taxonomy
func (s *apiSource) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to build request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeTransient, "captions request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", errors.New(errors.CodeTransient, fmt.Sprintf("captions endpoint returned %d", resp.StatusCode))
	case resp.StatusCode == http.StatusNotFound:
		return "", errors.New(errors.CodeNotAvailable, "video not found")
	case resp.StatusCode != http.StatusOK:
		return "", errors.New(errors.CodeExternal, fmt.Sprintf("captions endpoint returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeTransient, "failed to read captions response")
	}
	return string(body), nil
}
