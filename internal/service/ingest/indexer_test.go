package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/algrano/yt-grano/internal/errors"
	"github.com/algrano/yt-grano/internal/model"
)

type mockYouTube struct {
	mock.Mock
}

func (m *mockYouTube) FetchVideoInfo(ctx context.Context, videoURL string) (*model.Video, error) {
	args := m.Called(ctx, videoURL)
	if v := args.Get(0); v != nil {
		return v.(*model.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTranscriptService struct {
	mock.Mock
}

func (m *mockTranscriptService) GetTranscript(ctx context.Context, videoID, pageURL string) ([]model.CaptionRow, error) {
	args := m.Called(ctx, videoID, pageURL)
	if v := args.Get(0); v != nil {
		return v.([]model.CaptionRow), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockVideoRepo struct {
	mock.Mock
}

func (m *mockVideoRepo) Upsert(ctx context.Context, video *model.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *mockVideoRepo) GetByID(ctx context.Context, id string) (*model.Video, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVideoRepo) List(ctx context.Context, limit, offset int) ([]*model.Video, error) {
	args := m.Called(ctx, limit, offset)
	if v := args.Get(0); v != nil {
		return v.([]*model.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVideoRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockEmbedder struct {
	mock.Mock
}

func (m *mockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if v := args.Get(0); v != nil {
		return v.([][]float32), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmbedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if v := args.Get(0); v != nil {
		return v.([]float32), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockVectorStore struct {
	mock.Mock
}

func (m *mockVectorStore) UpsertVideo(video model.Video, lang string, chunks []model.Chunk, embeddings [][]float32) error {
	return m.Called(video, lang, chunks, embeddings).Error(0)
}

func (m *mockVectorStore) HasVideo(videoID string) (bool, error) {
	args := m.Called(videoID)
	return args.Bool(0), args.Error(1)
}

func (m *mockVectorStore) Search(queryEmbedding []float32, k int, videoID string) ([]model.Hit, error) {
	args := m.Called(queryEmbedding, k, videoID)
	if v := args.Get(0); v != nil {
		return v.([]model.Hit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVectorStore) DeleteVideo(videoID string) error {
	return m.Called(videoID).Error(0)
}

func (m *mockVectorStore) Close() error {
	return m.Called().Error(0)
}

const testURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func indexRows() []model.CaptionRow {
	return []model.CaptionRow{
		{Text: "primero calentamos el agua", Start: 0, Duration: 30},
		{Text: "luego cebamos el mate", Start: 30, Duration: 40},
	}
}

func TestIndex_FullPipeline(t *testing.T) {
	yt := new(mockYouTube)
	ts := new(mockTranscriptService)
	repo := new(mockVideoRepo)
	emb := new(mockEmbedder)
	st := new(mockVectorStore)
	info := &model.Video{ID: "dQw4w9WgXcQ", Title: "Cómo preparar mate", URL: testURL, Duration: 70}

	yt.On("FetchVideoInfo", mock.Anything, testURL).Return(info, nil)
	ts.On("GetTranscript", mock.Anything, "dQw4w9WgXcQ", testURL).Return(indexRows(), nil)
	emb.On("Embed", mock.Anything, mock.MatchedBy(func(texts []string) bool {
		return len(texts) == 2
	})).Return([][]float32{{1, 0}, {0, 1}}, nil)
	repo.On("Upsert", mock.Anything, info).Return(nil)
	st.On("UpsertVideo", *info, "auto", mock.MatchedBy(func(chunks []model.Chunk) bool {
		return len(chunks) == 2 && chunks[0].StartSec == 0
	}), [][]float32{{1, 0}, {0, 1}}).Return(nil)

	ix := NewIndexer(yt, ts, repo, emb, st, IndexOptions{WindowSec: 60, OverlapSec: 12})
	res, err := ix.Index(context.Background(), testURL)

	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", res.Video.ID)
	assert.Equal(t, 2, res.Chunks)
	st.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestIndex_MetadataFailureUsesPlaceholder(t *testing.T) {
	yt := new(mockYouTube)
	ts := new(mockTranscriptService)
	repo := new(mockVideoRepo)
	emb := new(mockEmbedder)
	st := new(mockVectorStore)

	yt.On("FetchVideoInfo", mock.Anything, testURL).Return(nil, errors.New(errors.CodeExternal, "yt-dlp missing"))
	ts.On("GetTranscript", mock.Anything, "dQw4w9WgXcQ", testURL).Return(indexRows(), nil)
	emb.On("Embed", mock.Anything, mock.Anything).Return([][]float32{{1, 0}}, nil)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(v *model.Video) bool {
		return v.ID == "dQw4w9WgXcQ" && v.Title == "YouTube video"
	})).Return(nil)
	st.On("UpsertVideo", mock.Anything, "auto", mock.Anything, mock.Anything).Return(nil)

	ix := NewIndexer(yt, ts, repo, emb, st, IndexOptions{WindowSec: 120, OverlapSec: 12})
	res, err := ix.Index(context.Background(), testURL)

	require.NoError(t, err)
	assert.Equal(t, "YouTube video", res.Video.Title)
}

func TestIndex_InvalidURL(t *testing.T) {
	ix := NewIndexer(new(mockYouTube), new(mockTranscriptService), new(mockVideoRepo), new(mockEmbedder), new(mockVectorStore), IndexOptions{WindowSec: 60, OverlapSec: 12})
	_, err := ix.Index(context.Background(), "https://example.com/not-a-video")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidArg))
}

func TestIndex_AcquisitionFailureSurfaces(t *testing.T) {
	yt := new(mockYouTube)
	ts := new(mockTranscriptService)
	st := new(mockVectorStore)

	yt.On("FetchVideoInfo", mock.Anything, testURL).Return(&model.Video{ID: "dQw4w9WgXcQ"}, nil)
	ts.On("GetTranscript", mock.Anything, "dQw4w9WgXcQ", testURL).
		Return(nil, errors.New(errors.CodeExhausted, "no captions acquired"))

	ix := NewIndexer(yt, ts, new(mockVideoRepo), new(mockEmbedder), st, IndexOptions{WindowSec: 60, OverlapSec: 12})
	_, err := ix.Index(context.Background(), testURL)

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeExhausted))
	st.AssertNotCalled(t, "UpsertVideo", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
