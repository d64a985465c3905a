package captions

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/algrano/yt-grano/internal/errors"
	"github.com/algrano/yt-grano/internal/model"
	"github.com/algrano/yt-grano/internal/service/common"
)

const defaultPerLangAttempts = 2

// ytDlpExtractor implements Extractor by shelling out to yt-dlp
type ytDlpExtractor struct {
	cmdRunner       common.CmdRunner
	creds           []CredentialSource
	includeAuto     bool
	perLangAttempts int
	sleep           func(time.Duration)
	jitter          func() float64
}

// NewExtractor creates an Extractor with the default CmdRunner.
// includeAuto controls whether auto-generated subtitles are eligible;
// production policy keeps it off so only human-authored tracks count.
func NewExtractor(creds []CredentialSource, includeAuto bool) Extractor {
	return NewExtractorWithCmdRunner(common.NewCmdRunner(), creds, includeAuto)
}

// NewExtractorWithCmdRunner creates an Extractor with a custom CmdRunner (for testing)
func NewExtractorWithCmdRunner(cmdRunner common.CmdRunner, creds []CredentialSource, includeAuto bool) Extractor {
	if len(creds) == 0 {
		creds = []CredentialSource{Anonymous}
	}
	return &ytDlpExtractor{
		cmdRunner:       cmdRunner,
		creds:           creds,
		includeAuto:     includeAuto,
		perLangAttempts: defaultPerLangAttempts,
		sleep:           time.Sleep,
		jitter:          rand.Float64,
	}
}

// Download tries each credential source and each language in order and
// returns the rows of the first attempt yielding usable cues.
func (e *ytDlpExtractor) Download(ctx context.Context, pageURL string, langs []string) ([]model.CaptionRow, error) {
	if pageURL == "" {
		return nil, errors.New(errors.CodeInvalidArg, "page URL is required")
	}
	if len(langs) == 0 {
		return nil, errors.New(errors.CodeInvalidArg, "at least one language is required")
	}

	var lastErr error
	for _, cred := range e.creds {
		for _, lang := range langs {
			rows, err := e.downloadLang(ctx, pageURL, lang, cred)
			if err != nil {
				lastErr = err
				continue
			}
			return rows, nil
		}
	}

	return nil, errors.Wrap(lastErr, errors.CodeNotAvailable, "no language yielded usable subtitles")
}

// downloadLang retries one language a bounded number of times. The backoff
// is jittered to desynchronize repeated attempts against the same endpoint.
func (e *ytDlpExtractor) downloadLang(ctx context.Context, pageURL, lang string, cred CredentialSource) ([]model.CaptionRow, error) {
	var lastErr error
	for attempt := 0; attempt < e.perLangAttempts; attempt++ {
		if attempt > 0 {
			backoff := float64(int64(1)<<attempt) + e.jitter()
			e.sleep(time.Duration(backoff * float64(time.Second)))
		}

		rows, err := e.attempt(ctx, pageURL, lang, cred)
		if err != nil {
			lastErr = err
			if errors.IsNotAvailable(err) {
				// The language simply is not there; retrying cannot help
				return nil, err
			}
			continue
		}
		return rows, nil
	}
	return nil, lastErr
}

// attempt runs yt-dlp once for one language and parses whatever it produced
func (e *ytDlpExtractor) attempt(ctx context.Context, pageURL, lang string, cred CredentialSource) ([]model.CaptionRow, error) {
	dir, err := os.MkdirTemp("", "ytgrano-subs-*")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create temp directory")
	}
	defer os.RemoveAll(dir)

	args := []string{
		"--skip-download",
		"--write-subs",
	}
	if e.includeAuto {
		args = append(args, "--write-auto-subs")
	}
	args = append(args,
		"--sub-format", "vtt",
		"--sub-langs", lang,
		"--output", filepath.Join(dir, "%(id)s.%(ext)s"),
		"--no-warnings",
		"--quiet",
	)
	args = append(args, cred.Args()...)
	args = append(args, pageURL)

	if _, err := e.cmdRunner.Run(ctx, "yt-dlp", args...); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "yt-dlp subtitle download failed")
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.vtt"))
	if err != nil || len(matches) == 0 {
		return nil, errors.New(errors.CodeNotAvailable, "no subtitle file produced for language "+lang)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to read subtitle file")
	}

	rows := ParseVTT(string(data))
	if len(rows) == 0 {
		return nil, errors.New(errors.CodeNotAvailable, "subtitle file for language "+lang+" had no usable cues")
	}
	return rows, nil
}
