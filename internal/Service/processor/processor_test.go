package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialdown/internal/models"
	"socialdown/internal/repository"
	"socialdown/pkg/logster"
)

func testLogger() logster.Logger {
	return logster.New(os.Stdout, logster.Config{Project: "test", Level: "error"})
}

func createDownload(t *testing.T, s *repository.Storage, limit int) models.Download {
	t.Helper()
	d, err := s.CreateDownload(context.Background(), models.CreateDownloadRequest{
		Platform:     models.PlatformTiktok,
		DownloadType: "username",
		Value:        "@alice",
		Limit:        limit,
	})
	require.NoError(t, err)
	return d
}

func mockFile(downloadId string, index int) models.InsertDownloadFile {
	return models.InsertDownloadFile{
		DownloadId: downloadId,
		Filename:   fmt.Sprintf("alice_dance_%03d.mp4", index),
		Url:        fmt.Sprintf("/downloads/%s/alice_dance_%03d.mp4", downloadId, index),
		Size:       "1.2 MB",
	}
}

func TestProcessor_Run_Completes(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStorage(testLogger())
	d := createDownload(t, store, 5)

	fetcher := new(MockFetcher)
	fetcher.On("UnitCount", "username", 5).Return(5)
	for i := 1; i <= 5; i++ {
		fetcher.On("FetchOne", mock.Anything, mock.Anything, i).Return(mockFile(d.Id, i), nil)
	}

	p := New(Config{}, store, fetcher, testLogger())
	p.Run(ctx, d.Id)

	got, err := store.GetDownload(ctx, d.Id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, 5, got.TotalFiles)
	assert.Equal(t, 5, got.CompletedFiles)
	require.NotNil(t, got.ZipUrl)
	require.NotNil(t, got.ExcelUrl)
	assert.Equal(t, "/api/downloads/"+d.Id+"/zip", *got.ZipUrl)
	assert.Equal(t, "/api/downloads/"+d.Id+"/excel", *got.ExcelUrl)

	files, err := store.ListFiles(ctx, d.Id)
	require.NoError(t, err)
	assert.Len(t, files, 5)

	fetcher.AssertExpectations(t)
}

func TestProcessor_Run_FetchFailureKeepsEmittedFiles(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStorage(testLogger())
	d := createDownload(t, store, 4)

	fetcher := new(MockFetcher)
	fetcher.On("UnitCount", "username", 4).Return(4)
	fetcher.On("FetchOne", mock.Anything, mock.Anything, 1).Return(mockFile(d.Id, 1), nil)
	fetcher.On("FetchOne", mock.Anything, mock.Anything, 2).Return(mockFile(d.Id, 2), nil)
	fetcher.On("FetchOne", mock.Anything, mock.Anything, 3).Return(models.InsertDownloadFile{}, errors.New("rate limited"))

	p := New(Config{}, store, fetcher, testLogger())
	p.Run(ctx, d.Id)

	got, err := store.GetDownload(ctx, d.Id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.Status)
	// no rollback: the two emitted files stay queryable
	assert.Equal(t, 2, got.CompletedFiles)
	assert.Equal(t, 4, got.TotalFiles)
	assert.Equal(t, 50, got.Progress)

	files, err := store.ListFiles(ctx, d.Id)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	fetcher.AssertNotCalled(t, "FetchOne", mock.Anything, mock.Anything, 4)
}

func TestProcessor_Run_MissingDownloadAbortsSilently(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStorage(testLogger())

	fetcher := new(MockFetcher)
	p := New(Config{}, store, fetcher, testLogger())
	p.Run(ctx, "no-such-download")

	downloads, err := store.ListDownloads(ctx)
	require.NoError(t, err)
	assert.Empty(t, downloads)
	fetcher.AssertNotCalled(t, "UnitCount", mock.Anything, mock.Anything)
}

func TestProcessor_Run_CancelledMarksFailed(t *testing.T) {
	store := repository.NewStorage(testLogger())
	d := createDownload(t, store, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := new(MockFetcher)
	p := New(Config{}, store, fetcher, testLogger())
	p.Run(ctx, d.Id)

	got, err := store.GetDownload(context.Background(), d.Id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, got.Status)
}
