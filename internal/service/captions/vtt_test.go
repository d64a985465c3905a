package captions

import (
	"testing"

	"github.com/algrano/yt-grano/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVTT(t *testing.T) {
	t.Run("cue with two text lines is space-joined and normalized", func(t *testing.T) {
		input := "WEBVTT\n\n00:01:02.500 --> 00:01:05.000\nfirst   line\nsecond line\n\n"
		rows := ParseVTT(input)

		require.Len(t, rows, 1)
		assert.Equal(t, 62.5, rows[0].Start)
		assert.Equal(t, 2.5, rows[0].Duration)
		assert.Equal(t, "first line second line", rows[0].Text)
	})

	t.Run("comma decimal separator (SRT style)", func(t *testing.T) {
		input := "1\n00:00:00,000 --> 00:00:01,830\nI'm happy to\nhave you here today.\n"
		rows := ParseVTT(input)

		require.Len(t, rows, 1)
		assert.Equal(t, 0.0, rows[0].Start)
		assert.Equal(t, 1.83, rows[0].Duration)
		assert.Equal(t, "I'm happy to have you here today.", rows[0].Text)
	})

	t.Run("MM:SS timestamps without hours", func(t *testing.T) {
		input := "01:30.000 --> 01:32.500\nshort form\n"
		rows := ParseVTT(input)

		require.Len(t, rows, 1)
		assert.Equal(t, 90.0, rows[0].Start)
		assert.Equal(t, 2.5, rows[0].Duration)
	})

	t.Run("cue settings after end timestamp are ignored", func(t *testing.T) {
		input := "00:00:01.000 --> 00:00:03.000 align:start position:0%\nhello\n"
		rows := ParseVTT(input)

		require.Len(t, rows, 1)
		assert.Equal(t, 1.0, rows[0].Start)
		assert.Equal(t, 2.0, rows[0].Duration)
	})

	t.Run("empty cues are dropped", func(t *testing.T) {
		input := "00:00:01.000 --> 00:00:02.000\n   \n\n00:00:02.000 --> 00:00:03.000\nkept\n"
		rows := ParseVTT(input)

		require.Len(t, rows, 1)
		assert.Equal(t, "kept", rows[0].Text)
	})

	t.Run("negative duration clamps to zero", func(t *testing.T) {
		input := "00:00:05.000 --> 00:00:04.000\nbackwards cue\n"
		rows := ParseVTT(input)

		require.Len(t, rows, 1)
		assert.Equal(t, 0.0, rows[0].Duration)
	})

	t.Run("back to back cues without blank separator", func(t *testing.T) {
		input := "00:00:00.000 --> 00:00:01.000\none\n00:00:01.000 --> 00:00:02.000\ntwo\n"
		rows := ParseVTT(input)

		require.Equal(t, []model.CaptionRow{
			{Text: "one", Start: 0, Duration: 1},
			{Text: "two", Start: 1, Duration: 1},
		}, rows)
	})

	t.Run("garbage timestamps are skipped", func(t *testing.T) {
		input := "not-a-time --> also-not\nignored\n00:00:01.000 --> 00:00:02.000\nkept\n"
		rows := ParseVTT(input)

		require.Len(t, rows, 1)
		assert.Equal(t, "kept", rows[0].Text)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ParseVTT(""))
	})
}
