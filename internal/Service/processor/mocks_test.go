package processor

import (
	"context"

	"github.com/stretchr/testify/mock"

	"socialdown/internal/models"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) UnitCount(downloadType string, limit int) int {
	args := m.Called(downloadType, limit)
	return args.Int(0)
}

func (m *MockFetcher) FetchOne(ctx context.Context, download models.Download, index int) (models.InsertDownloadFile, error) {
	args := m.Called(ctx, download, index)
	return args.Get(0).(models.InsertDownloadFile), args.Error(1)
}
