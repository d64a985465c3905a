package captions

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/algrano/yt-grano/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockCmdRunner for testing
type mockCmdRunner struct {
	mock.Mock
}

func (m *mockCmdRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	callArgs := m.Called(ctx, name, args)
	if callArgs.Get(0) == nil {
		return nil, callArgs.Error(1)
	}
	return callArgs.Get(0).([]byte), callArgs.Error(1)
}

// outputDir extracts the directory of the --output template from yt-dlp args
func outputDir(args []string) string {
	for i, a := range args {
		if a == "--output" && i+1 < len(args) {
			return filepath.Dir(args[i+1])
		}
	}
	return ""
}

// subLang extracts the --sub-langs value from yt-dlp args
func subLang(args []string) string {
	for i, a := range args {
		if a == "--sub-langs" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

// newTestExtractor silences sleeps so retry paths run instantly
func newTestExtractor(runner *mockCmdRunner, creds []CredentialSource, includeAuto bool) *ytDlpExtractor {
	e := NewExtractorWithCmdRunner(runner, creds, includeAuto).(*ytDlpExtractor)
	e.sleep = func(time.Duration) {}
	e.jitter = func() float64 { return 0 }
	return e
}

const sampleVTT = "WEBVTT\n\n00:00:00.000 --> 00:00:02.000\nhola a todos\n"

func TestExtractor_Download(t *testing.T) {
	t.Run("first language with usable rows wins", func(t *testing.T) {
		runner := new(mockCmdRunner)
		runner.On("Run", mock.Anything, "yt-dlp", mock.Anything).
			Run(func(args mock.Arguments) {
				cmdArgs := args.Get(2).([]string)
				if subLang(cmdArgs) == "es" {
					// es produces nothing; en will produce a file
					return
				}
				err := os.WriteFile(filepath.Join(outputDir(cmdArgs), "vid.en.vtt"), []byte(sampleVTT), 0644)
				require.NoError(t, err)
			}).
			Return([]byte{}, nil)

		e := newTestExtractor(runner, nil, false)
		rows, err := e.Download(context.Background(), "https://www.youtube.com/watch?v=zxQyTK8quyY", []string{"es", "en"})

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "hola a todos", rows[0].Text)
	})

	t.Run("auto-generated excluded unless configured", func(t *testing.T) {
		runner := new(mockCmdRunner)
		runner.On("Run", mock.Anything, "yt-dlp", mock.Anything).
			Run(func(args mock.Arguments) {
				cmdArgs := args.Get(2).([]string)
				assert.False(t, hasFlag(cmdArgs, "--write-auto-subs"))
				err := os.WriteFile(filepath.Join(outputDir(cmdArgs), "vid.es.vtt"), []byte(sampleVTT), 0644)
				require.NoError(t, err)
			}).
			Return([]byte{}, nil)

		e := newTestExtractor(runner, nil, false)
		_, err := e.Download(context.Background(), "https://www.youtube.com/watch?v=zxQyTK8quyY", []string{"es"})
		require.NoError(t, err)
	})

	t.Run("auto-generated included when configured", func(t *testing.T) {
		runner := new(mockCmdRunner)
		runner.On("Run", mock.Anything, "yt-dlp", mock.Anything).
			Run(func(args mock.Arguments) {
				cmdArgs := args.Get(2).([]string)
				assert.True(t, hasFlag(cmdArgs, "--write-auto-subs"))
				err := os.WriteFile(filepath.Join(outputDir(cmdArgs), "vid.es.vtt"), []byte(sampleVTT), 0644)
				require.NoError(t, err)
			}).
			Return([]byte{}, nil)

		e := newTestExtractor(runner, nil, true)
		_, err := e.Download(context.Background(), "https://www.youtube.com/watch?v=zxQyTK8quyY", []string{"es"})
		require.NoError(t, err)
	})

	t.Run("credential chain is applied in order", func(t *testing.T) {
		var seenCookieArgs bool
		runner := new(mockCmdRunner)
		runner.On("Run", mock.Anything, "yt-dlp", mock.Anything).
			Run(func(args mock.Arguments) {
				cmdArgs := args.Get(2).([]string)
				if hasFlag(cmdArgs, "--cookies") {
					seenCookieArgs = true
					err := os.WriteFile(filepath.Join(outputDir(cmdArgs), "vid.es.vtt"), []byte(sampleVTT), 0644)
					require.NoError(t, err)
				}
				// Anonymous attempts produce no file
			}).
			Return([]byte{}, nil)

		creds := Chain("cookies.txt", nil)
		e := newTestExtractor(runner, creds, false)
		rows, err := e.Download(context.Background(), "https://www.youtube.com/watch?v=zxQyTK8quyY", []string{"es"})

		require.NoError(t, err)
		assert.True(t, seenCookieArgs)
		assert.NotEmpty(t, rows)
	})

	t.Run("no language yields rows", func(t *testing.T) {
		runner := new(mockCmdRunner)
		runner.On("Run", mock.Anything, "yt-dlp", mock.Anything).Return([]byte{}, nil)

		e := newTestExtractor(runner, nil, false)
		_, err := e.Download(context.Background(), "https://www.youtube.com/watch?v=zxQyTK8quyY", []string{"es", "en"})

		assert.True(t, apperrors.IsNotAvailable(err))
	})

	t.Run("command failures are retried per language", func(t *testing.T) {
		runner := new(mockCmdRunner)
		calls := 0
		runner.On("Run", mock.Anything, "yt-dlp", mock.Anything).
			Run(func(args mock.Arguments) {
				calls++
			}).
			Return(nil, assert.AnError)

		e := newTestExtractor(runner, nil, false)
		_, err := e.Download(context.Background(), "https://www.youtube.com/watch?v=zxQyTK8quyY", []string{"es"})

		assert.Error(t, err)
		assert.Equal(t, defaultPerLangAttempts, calls)
	})

	t.Run("empty URL rejected", func(t *testing.T) {
		e := newTestExtractor(new(mockCmdRunner), nil, false)
		_, err := e.Download(context.Background(), "", []string{"es"})
		assert.Error(t, err)
	})
}

func TestChain(t *testing.T) {
	chain := Chain("cookies.txt", []string{"chrome", "edge"})

	require.Len(t, chain, 4)
	assert.Equal(t, Anonymous, chain[0])
	assert.Equal(t, []string{"--cookies", "cookies.txt"}, chain[1].Args())
	assert.Equal(t, []string{"--cookies-from-browser", "chrome"}, chain[2].Args())
	assert.Equal(t, []string{"--cookies-from-browser", "edge"}, chain[3].Args())

	// No configured credentials leaves only anonymous
	assert.Equal(t, []CredentialSource{Anonymous}, Chain("", nil))
	assert.Nil(t, Anonymous.Args())
}
