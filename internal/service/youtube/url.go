package youtube

import (
	"fmt"
	"math"
	"regexp"

	"github.com/algrano/yt-grano/internal/errors"
)

// videoIDPattern matches the 11-character video ID in watch and short URLs
var videoIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/)([\w-]{11})`)

// bareIDPattern matches a video ID given on its own
var bareIDPattern = regexp.MustCompile(`^[\w-]{11}$`)

// ParseVideoID extracts the video ID from a YouTube URL
func ParseVideoID(url string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", errors.New(errors.CodeInvalidArg, fmt.Sprintf("could not extract a video ID from %q", url))
	}
	return m[1], nil
}

// ResolveVideoID accepts either a bare 11-character video ID or a full URL.
func ResolveVideoID(arg string) (string, error) {
	if bareIDPattern.MatchString(arg) {
		return arg, nil
	}
	return ParseVideoID(arg)
}

// WatchURL returns a deep link to the video starting at the given second
func WatchURL(videoID string, startSec float64) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s&t=%d", videoID, int(startSec))
}

// ThumbnailURL returns the default thumbnail image URL for a video
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/0.jpg", videoID)
}

// FormatTimestamp renders seconds as HH:MM:SS when at least an hour,
// MM:SS otherwise, rounded to the nearest second.
func FormatTimestamp(seconds float64) string {
	total := int(math.Round(seconds))
	m, s := total/60, total%60
	h, m := m/60, m%60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
