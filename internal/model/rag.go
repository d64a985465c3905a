package model

// Chunk is a fixed-width, overlapping time window of concatenated caption text.
// Chunks are the unit that gets embedded and indexed.
type Chunk struct {
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Text     string  `json:"text"`
}

// Hit is a scored retrieval result from similarity search against indexed chunks
type Hit struct {
	Score    float64 `json:"score"` // cosine similarity in [0,1], higher is more similar
	VideoID  string  `json:"video_id"`
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Text     string  `json:"text"`
	Title    string  `json:"title,omitempty"`
	Lang     string  `json:"lang,omitempty"`
}

// Citation is a user-facing timestamped link derived from a surviving hit
type Citation struct {
	Minute string `json:"minute"` // display timestamp, MM:SS or HH:MM:SS
	URL    string `json:"url"`    // deep link to the video at the cited second
}

// Answer is the final response for a question: generated text plus citations
type Answer struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations"`
}
