package answer

import "strings"

// Canonical refusal strings. A refusal is returned verbatim so callers
// and tests can match it exactly, and it never carries citations.
const (
	RefusalES = "No encontré fragmentos relevantes en los subtítulos."
	RefusalEN = "I could not find relevant fragments in the subtitles."
)

// IsRefusal reports whether text exactly equals a canonical refusal
func IsRefusal(text string) bool {
	return text == RefusalES || text == RefusalEN
}

var spanishMarkers = []string{
	"qué", "cómo", "cuál", "cuándo", "dónde", "quién", "por qué",
	"dice", "explica", "menciona", "sobre", "del", "los", "las",
}

var englishMarkers = []string{
	"what", "how", "which", "when", "where", "who", "why",
	"does", "say", "explain", "mention", "about", "the",
}

// refusalFor picks the refusal string matching the question's language.
// The check is a coarse marker-word count; inverted punctuation or any
// accented marker decides immediately for Spanish. Unclear questions get
// the Spanish refusal, matching the app's primary audience.
func refusalFor(question string) string {
	q := strings.ToLower(question)
	if strings.ContainsAny(q, "¿¡áéíóúñ") {
		return RefusalES
	}

	es, en := 0, 0
	for _, w := range strings.Fields(q) {
		w = strings.Trim(w, "?!.,;:")
		for _, m := range spanishMarkers {
			if w == m {
				es++
			}
		}
		for _, m := range englishMarkers {
			if w == m {
				en++
			}
		}
	}
	if en > es {
		return RefusalEN
	}
	return RefusalES
}
