package video

import (
	"context"

	"github.com/algrano/yt-grano/internal/model"
)

// Repository defines operations for Video persistence
type Repository interface {
	Upsert(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id string) (*model.Video, error)
	List(ctx context.Context, limit, offset int) ([]*model.Video, error)
	Delete(ctx context.Context, id string) error
}
