package answer

import (
	"math"
	"sort"

	"github.com/algrano/yt-grano/internal/model"
	"github.com/algrano/yt-grano/internal/service/youtube"
)

// DedupHitsByTime suppresses near-duplicate hits produced by overlapping
// windows. Hits are ordered by score descending (ties keep input order) and
// a hit is kept only when its start time differs from the most recently
// kept hit's start by at least minGapSec. The comparison is against the
// last kept hit only, never a global pairwise check, so a long run of
// moderately spaced hits is not clustered into one. The result is stable
// under re-application.
func DedupHitsByTime(hits []model.Hit, minGapSec float64) []model.Hit {
	if len(hits) == 0 {
		return nil
	}

	sorted := make([]model.Hit, len(hits))
	copy(sorted, hits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	var kept []model.Hit
	for _, h := range sorted {
		if len(kept) == 0 || math.Abs(h.StartSec-kept[len(kept)-1].StartSec) >= minGapSec {
			kept = append(kept, h)
		}
	}
	return kept
}

// MaxScore returns the highest score among the hits, or 0 for none
func MaxScore(hits []model.Hit) float64 {
	max := 0.0
	for _, h := range hits {
		if h.Score > max {
			max = h.Score
		}
	}
	return max
}

// BuildCitations picks the top citeK hits by relevance (the input is
// already score-descending after dedup) and renders them in timeline
// order, so the user reads citations chronologically even though they
// were chosen by score.
func BuildCitations(hits []model.Hit, citeK int) []model.Citation {
	if citeK > len(hits) {
		citeK = len(hits)
	}
	if citeK <= 0 {
		return nil
	}

	top := make([]model.Hit, citeK)
	copy(top, hits[:citeK])
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].StartSec < top[j].StartSec
	})

	citations := make([]model.Citation, 0, len(top))
	for _, h := range top {
		citations = append(citations, model.Citation{
			Minute: youtube.FormatTimestamp(h.StartSec),
			URL:    youtube.WatchURL(h.VideoID, h.StartSec),
		})
	}
	return citations
}
