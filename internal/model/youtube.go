package model

// Video represents YouTube video information
type Video struct {
	ID       string  `json:"id" db:"id"`
	Title    string  `json:"title" db:"title"`
	URL      string  `json:"url" db:"url"`
	Duration float64 `json:"duration" db:"duration"` // duration in seconds
}

// CaptionRow is one timed line of spoken-word text from a caption track
type CaptionRow struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`    // start time in seconds
	Duration float64 `json:"duration"` // duration in seconds
}

// End returns the end time of the row in seconds.
func (r CaptionRow) End() float64 {
	return r.Start + r.Duration
}

// CaptionTrack describes one caption stream available for a video
type CaptionTrack struct {
	LanguageCode string `json:"language_code"`
	Name         string `json:"name"`
	IsGenerated  bool   `json:"is_generated"` // auto-generated vs human-authored
	BaseURL      string `json:"base_url"`     // timedtext endpoint for fetching the rows
}
