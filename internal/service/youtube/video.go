package youtube

import (
	"context"
	"encoding/json"

	"github.com/algrano/yt-grano/internal/errors"
	"github.com/algrano/yt-grano/internal/model"
	"github.com/algrano/yt-grano/internal/service/common"
)

// Service is interface for YouTube video metadata operations
type Service interface {
	FetchVideoInfo(ctx context.Context, videoURL string) (*model.Video, error)
}

// service implements Service using yt-dlp
type service struct {
	cmdRunner common.CmdRunner
}

// NewService creates a new Service
func NewService() Service {
	return NewServiceWithCmdRunner(common.NewCmdRunner())
}

// NewServiceWithCmdRunner creates a new Service with custom CmdRunner (for testing)
func NewServiceWithCmdRunner(cmdRunner common.CmdRunner) Service {
	return &service{
		cmdRunner: cmdRunner,
	}
}

// ytDlpVideoInfo represents yt-dlp JSON output structure for video info
type ytDlpVideoInfo struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	URL      string  `json:"webpage_url"`
	Duration float64 `json:"duration"`
}

// FetchVideoInfo fetches video metadata from a video URL using yt-dlp
func (s *service) FetchVideoInfo(ctx context.Context, videoURL string) (*model.Video, error) {
	if videoURL == "" {
		return nil, errors.New(errors.CodeInvalidArg, "video URL is required")
	}

	args := []string{
		"--dump-json",
		"--skip-download",
		videoURL,
	}

	output, err := s.cmdRunner.Run(ctx, "yt-dlp", args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to fetch video info with yt-dlp")
	}

	var ytInfo ytDlpVideoInfo
	if err := json.Unmarshal(output, &ytInfo); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to parse yt-dlp output")
	}

	return &model.Video{
		ID:       ytInfo.ID,
		Title:    ytInfo.Title,
		URL:      ytInfo.URL,
		Duration: ytInfo.Duration,
	}, nil
}
