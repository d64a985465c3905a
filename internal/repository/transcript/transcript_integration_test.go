//go:build integration

package transcript

import (
	"context"
	"testing"

	apperrors "github.com/algrano/yt-grano/internal/errors"
	"github.com/algrano/yt-grano/internal/model"
	"github.com/algrano/yt-grano/internal/repository/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptRepository_Integration_RoundTrip(t *testing.T) {
	pool := common.SetupTestDB(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	rows := []model.CaptionRow{
		{Text: "uno", Start: 0, Duration: 1.5},
		{Text: "dos", Start: 1.5, Duration: 2},
	}

	// Miss before save
	_, err := repo.Load(ctx, "integ0000001")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	// Save and reload byte-identical rows
	require.NoError(t, repo.Save(ctx, "integ0000001", rows))
	got, err := repo.Load(ctx, "integ0000001")
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	// Overwrite on conflict
	rows2 := []model.CaptionRow{{Text: "tres", Start: 0, Duration: 3}}
	require.NoError(t, repo.Save(ctx, "integ0000001", rows2))
	got, err = repo.Load(ctx, "integ0000001")
	require.NoError(t, err)
	assert.Equal(t, rows2, got)

	// Delete turns it back into a miss
	require.NoError(t, repo.Delete(ctx, "integ0000001"))
	_, err = repo.Load(ctx, "integ0000001")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
