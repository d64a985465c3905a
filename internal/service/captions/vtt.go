package captions

import (
	"strconv"
	"strings"

	"github.com/algrano/yt-grano/internal/model"
)

// ParseVTT parses cue-based subtitle text (WebVTT and the SRT variant with
// comma decimals) into caption rows. A cue is a "start --> end" timestamp
// line followed by one or more text lines up to a blank line or the next
// cue. Text lines are joined with single spaces and whitespace-normalized;
// cues that end up empty are dropped.
func ParseVTT(text string) []model.CaptionRow {
	lines := strings.Split(text, "\n")
	var rows []model.CaptionRow

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if !strings.Contains(line, "-->") {
			i++
			continue
		}

		parts := strings.SplitN(line, "-->", 2)
		// Timestamps may carry cue settings after the end time ("align:start")
		startTS := strings.TrimSpace(parts[0])
		endTS := strings.TrimSpace(parts[1])
		if f := strings.Fields(endTS); len(f) > 0 {
			endTS = f[0]
		}

		start, okStart := parseCueTimestamp(startTS)
		end, okEnd := parseCueTimestamp(endTS)
		i++
		if !okStart || !okEnd {
			continue
		}

		var textLines []string
		for i < len(lines) {
			l := strings.TrimSpace(lines[i])
			if l == "" || strings.Contains(l, "-->") {
				break
			}
			textLines = append(textLines, l)
			i++
		}

		joined := normalizeSpace(strings.Join(textLines, " "))
		if joined == "" {
			continue
		}

		duration := end - start
		if duration < 0 {
			duration = 0
		}
		rows = append(rows, model.CaptionRow{
			Text:     joined,
			Start:    start,
			Duration: duration,
		})
	}

	return rows
}

// parseCueTimestamp converts "H:MM:SS.mmm" or "MM:SS.mmm" (comma or period
// as decimal separator) into seconds.
func parseCueTimestamp(ts string) (float64, bool) {
	ts = strings.ReplaceAll(ts, ",", ".")
	parts := strings.Split(ts, ":")

	var h, m int
	var s float64
	var err error
	switch len(parts) {
	case 3:
		if h, err = strconv.Atoi(parts[0]); err != nil {
			return 0, false
		}
		if m, err = strconv.Atoi(parts[1]); err != nil {
			return 0, false
		}
		if s, err = strconv.ParseFloat(parts[2], 64); err != nil {
			return 0, false
		}
	case 2:
		if m, err = strconv.Atoi(parts[0]); err != nil {
			return 0, false
		}
		if s, err = strconv.ParseFloat(parts[1], 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}

	return float64(h)*3600 + float64(m)*60 + s, true
}
