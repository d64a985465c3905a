package video

import (
	"context"
	"testing"

	apperrors "github.com/algrano/yt-grano/internal/errors"
	"github.com/algrano/yt-grano/internal/model"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoRepository_Upsert(t *testing.T) {
	tests := []struct {
		name    string
		video   *model.Video
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr bool
	}{
		{
			name: "successful upsert",
			video: &model.Video{
				ID:       "zxQyTK8quyY",
				Title:    "Transformers, explained",
				URL:      "https://www.youtube.com/watch?v=zxQyTK8quyY",
				Duration: 1423,
			},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("INSERT INTO videos").
					WithArgs("zxQyTK8quyY", "Transformers, explained", "https://www.youtube.com/watch?v=zxQyTK8quyY", float64(1423)).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
			wantErr: false,
		},
		{
			name:    "missing ID rejected",
			video:   &model.Video{Title: "no id"},
			setup:   func(mock pgxmock.PgxPoolIface) {},
			wantErr: true,
		},
		{
			name: "database error surfaces",
			video: &model.Video{
				ID: "zxQyTK8quyY",
			},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("INSERT INTO videos").
					WithArgs("zxQyTK8quyY", "", "", float64(0)).
					WillReturnError(assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			repo := NewRepository(mock)
			err = repo.Upsert(context.Background(), tt.video)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVideoRepository_GetByID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		setup    func(mock pgxmock.PgxPoolIface)
		want     *model.Video
		wantCode string
	}{
		{
			name: "video found",
			id:   "zxQyTK8quyY",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT id, title, url, duration FROM videos").
					WithArgs("zxQyTK8quyY").
					WillReturnRows(pgxmock.NewRows([]string{"id", "title", "url", "duration"}).
						AddRow("zxQyTK8quyY", "Transformers, explained", "https://www.youtube.com/watch?v=zxQyTK8quyY", float64(1423)))
			},
			want: &model.Video{
				ID:       "zxQyTK8quyY",
				Title:    "Transformers, explained",
				URL:      "https://www.youtube.com/watch?v=zxQyTK8quyY",
				Duration: 1423,
			},
		},
		{
			name: "video not found",
			id:   "missing00000",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT id, title, url, duration FROM videos").
					WithArgs("missing00000").
					WillReturnRows(pgxmock.NewRows([]string{"id", "title", "url", "duration"}))
			},
			wantCode: apperrors.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			repo := NewRepository(mock)
			got, err := repo.GetByID(context.Background(), tt.id)

			if tt.wantCode != "" {
				assert.Error(t, err)
				assert.True(t, apperrors.HasCode(err, tt.wantCode))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVideoRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, title, url, duration FROM videos").
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "url", "duration"}).
			AddRow("aaaaaaaaaaa", "First", "https://www.youtube.com/watch?v=aaaaaaaaaaa", float64(10)).
			AddRow("bbbbbbbbbbb", "Second", "https://www.youtube.com/watch?v=bbbbbbbbbbb", float64(20)))

	repo := NewRepository(mock)
	// zero limit falls back to the default page size
	videos, err := repo.List(context.Background(), 0, -5)

	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "aaaaaaaaaaa", videos[0].ID)
	assert.Equal(t, "Second", videos[1].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}
