package video

import (
	"context"
	"errors"

	apperrors "github.com/algrano/yt-grano/internal/errors"
	"github.com/algrano/yt-grano/internal/model"
	"github.com/algrano/yt-grano/internal/repository/common"
	"github.com/jackc/pgx/v5"
)

// videoRepository implements Repository using PostgreSQL
type videoRepository struct {
	pool common.Pool
}

// NewRepository creates a new instance of Repository
func NewRepository(pool common.Pool) Repository {
	return &videoRepository{
		pool: pool,
	}
}

// Upsert inserts a video or updates its metadata when it already exists
func (r *videoRepository) Upsert(ctx context.Context, video *model.Video) error {
	if video == nil || video.ID == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "video ID is required")
	}

	sql := `INSERT INTO videos (id, title, url, duration)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, url = EXCLUDED.url, duration = EXCLUDED.duration`

	if _, err := r.pool.Exec(ctx, sql, video.ID, video.Title, video.URL, video.Duration); err != nil {
		return common.HandlePostgreSQLError(err, "failed to upsert video")
	}
	return nil
}

// GetByID retrieves a video by its ID
func (r *videoRepository) GetByID(ctx context.Context, id string) (*model.Video, error) {
	sql := `SELECT id, title, url, duration FROM videos WHERE id = $1`
	row := r.pool.QueryRow(ctx, sql, id)

	var video model.Video
	err := row.Scan(&video.ID, &video.Title, &video.URL, &video.Duration)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "video not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get video")
	}

	return &video, nil
}

// List retrieves indexed videos with pagination
func (r *videoRepository) List(ctx context.Context, limit, offset int) ([]*model.Video, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	sql := `SELECT id, title, url, duration FROM videos ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list videos")
	}
	defer rows.Close()

	var videos []*model.Video
	for rows.Next() {
		var video model.Video
		if err := rows.Scan(&video.ID, &video.Title, &video.URL, &video.Duration); err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan video")
		}
		videos = append(videos, &video)
	}
	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to read videos")
	}

	return videos, nil
}

// Delete removes a video record
func (r *videoRepository) Delete(ctx context.Context, id string) error {
	sql := `DELETE FROM videos WHERE id = $1`

	tag, err := r.pool.Exec(ctx, sql, id)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to delete video")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "video not found")
	}
	return nil
}
