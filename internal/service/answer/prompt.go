package answer

import (
	"fmt"
	"strings"

	"github.com/algrano/yt-grano/internal/model"
	"github.com/algrano/yt-grano/internal/service/youtube"
)

// snippetMaxChars bounds each context snippet so a handful of 60-second
// chunks cannot blow the generation context.
const snippetMaxChars = 400

const systemPrompt = "Eres un asistente conciso. Responde SOLO con la información del contexto.\n" +
	"No inventes. Si no está en el contexto, di que no aparece.\n" +
	"Responde en el idioma de la pregunta, en 1-3 frases como máximo."

// buildMessages renders the question plus up to ctxMax hits into a chat
// conversation. Each snippet is prefixed with its timestamp range so the
// model can ground statements in a moment of the video.
func buildMessages(question string, hits []model.Hit, ctxMax int) []Message {
	if ctxMax > len(hits) {
		ctxMax = len(hits)
	}

	var lines []string
	for _, h := range hits[:ctxMax] {
		text := truncateRunes(strings.TrimSpace(h.Text), snippetMaxChars)
		rng := fmt.Sprintf("[%s-%s]", youtube.FormatTimestamp(h.StartSec), youtube.FormatTimestamp(h.EndSec))
		lines = append(lines, rng+" "+text)
	}

	context := "(sin contexto disponible)"
	if len(lines) > 0 {
		context = strings.Join(lines, "\n")
	}

	user := fmt.Sprintf(
		"Pregunta: %s\n\nContexto (fragmentos de subtítulos):\n%s\n\nResponde de forma breve y directa basándote solo en lo anterior.",
		question, context,
	)

	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: user},
	}
}

// truncateRunes cuts s to at most max runes, appending an ellipsis marker
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
