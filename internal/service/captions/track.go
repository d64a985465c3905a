package captions

import (
	"strings"

	"github.com/algrano/yt-grano/internal/model"
)

// notPreferred is the priority assigned to tracks matching no preferred language
const notPreferred = 10000

// LangPriority returns the position of a language code in the preference
// list, or notPreferred when it matches none. Regional variants match via
// the prefix rule in either direction: "es-419" matches preference "es",
// and "es" matches preference "es-419".
func LangPriority(langCode string, preferred []string) int {
	langCode = strings.ToLower(langCode)
	for i, pref := range preferred {
		pref = strings.ToLower(pref)
		if langCode == pref ||
			strings.HasPrefix(langCode, pref+"-") ||
			strings.HasPrefix(pref, langCode+"-") {
			return i
		}
	}
	return notPreferred
}

// SelectTrack picks the best caption track for the language preference list.
// Only human-authored tracks are considered; among them the lowest priority
// value wins, with listing order as the tie-break. When no human-authored
// track matches any preferred language, nil is returned and the caller
// falls back to the extraction provider.
func SelectTrack(tracks []model.CaptionTrack, preferred []string) *model.CaptionTrack {
	var best *model.CaptionTrack
	bestPrio := notPreferred

	for i := range tracks {
		if tracks[i].IsGenerated {
			continue
		}
		prio := LangPriority(tracks[i].LanguageCode, preferred)
		if prio < bestPrio {
			bestPrio = prio
			best = &tracks[i]
		}
	}

	return best
}
