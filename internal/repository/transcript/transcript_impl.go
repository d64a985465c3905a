package transcript

import (
	"context"
	"encoding/json"
	"errors"

	apperrors "github.com/algrano/yt-grano/internal/errors"
	"github.com/algrano/yt-grano/internal/model"
	"github.com/algrano/yt-grano/internal/repository/common"
	"github.com/jackc/pgx/v5"
)

// transcriptRepository implements Repository using PostgreSQL
type transcriptRepository struct {
	pool common.Pool
}

// NewRepository creates a new instance of Repository
func NewRepository(pool common.Pool) Repository {
	return &transcriptRepository{
		pool: pool,
	}
}

// Load retrieves the cached caption rows for a video
func (r *transcriptRepository) Load(ctx context.Context, videoID string) ([]model.CaptionRow, error) {
	sql := `SELECT data FROM transcripts WHERE video_id = $1`

	var raw []byte
	err := r.pool.QueryRow(ctx, sql, videoID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "transcript not cached")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to load cached transcript")
	}

	var rows []model.CaptionRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		// Corrupted entry behaves like a miss, never a fatal error
		return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "cached transcript is unreadable")
	}
	if len(rows) == 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "cached transcript is empty")
	}

	return rows, nil
}

// Save persists caption rows for a video, overwriting any previous entry
func (r *transcriptRepository) Save(ctx context.Context, videoID string, rows []model.CaptionRow) error {
	if videoID == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "video ID is required")
	}
	if len(rows) == 0 {
		return apperrors.New(apperrors.CodeInvalidArg, "refusing to cache an empty transcript")
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode transcript")
	}

	sql := `INSERT INTO transcripts (video_id, data)
		VALUES ($1, $2)
		ON CONFLICT (video_id) DO UPDATE SET data = EXCLUDED.data`

	if _, err := r.pool.Exec(ctx, sql, videoID, raw); err != nil {
		return common.HandlePostgreSQLError(err, "failed to save transcript")
	}
	return nil
}

// Delete removes the cached entry for a video
func (r *transcriptRepository) Delete(ctx context.Context, videoID string) error {
	sql := `DELETE FROM transcripts WHERE video_id = $1`

	tag, err := r.pool.Exec(ctx, sql, videoID)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to delete transcript")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "transcript not cached")
	}
	return nil
}
