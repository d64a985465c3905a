package ingest

import (
	"math"
	"strings"

	"github.com/algrano/yt-grano/internal/errors"
	"github.com/algrano/yt-grano/internal/model"
)

// Segment slices caption rows into overlapping time windows. A row belongs
// to every window its interval intersects, so text near a boundary appears
// in both neighbouring chunks. Windows whose text is empty after joining
// are dropped; the final window's end is clamped to the transcript's end.
func Segment(rows []model.CaptionRow, windowSec, overlapSec float64) ([]model.Chunk, error) {
	if windowSec <= 0 {
		return nil, errors.New(errors.CodeInvalidArg, "window must be positive")
	}
	if overlapSec < 0 || overlapSec >= windowSec {
		return nil, errors.New(errors.CodeInvalidArg, "overlap must be non-negative and smaller than the window")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	endTotal := 0.0
	for _, r := range rows {
		if end := r.End(); end > endTotal {
			endTotal = end
		}
	}

	var chunks []model.Chunk
	step := windowSec - overlapSec
	for start := 0.0; start < endTotal; start += step {
		end := start + windowSec

		var parts []string
		for _, r := range rows {
			if r.Start < end && r.End() > start {
				parts = append(parts, r.Text)
			}
		}

		text := normalizeSpace(strings.Join(parts, " "))
		if text == "" {
			continue
		}

		chunks = append(chunks, model.Chunk{
			StartSec: start,
			EndSec:   math.Min(end, endTotal),
			Text:     text,
		})
	}
	return chunks, nil
}

// normalizeSpace collapses runs of whitespace into single spaces
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
