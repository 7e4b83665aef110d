package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"socialdown/internal/models"
	"socialdown/pkg/logster"
)

// Fetcher produces one file record per unit of work. The mock
// implementation fabricates metadata; a real media client would replace
// it behind the same interface.
type Fetcher interface {
	UnitCount(downloadType string, limit int) int
	FetchOne(ctx context.Context, download models.Download, index int) (models.InsertDownloadFile, error)
}

type Config struct {
	// UnitDelay is the simulated per-unit fetch latency. UnitDelayMs is
	// its yaml-facing form.
	UnitDelay    time.Duration `yaml:"-"`
	UnitDelayMs  int           `yaml:"unit_delay_ms"`
	DefaultLimit int           `yaml:"default_limit"`
	MaxFiles     int           `yaml:"max_files"`
	BulkMin      int           `yaml:"bulk_min"`
	BulkMax      int           `yaml:"bulk_max"`
}

func (c *Config) fillDefaults() {
	if c.UnitDelay == 0 && c.UnitDelayMs > 0 {
		c.UnitDelay = time.Duration(c.UnitDelayMs) * time.Millisecond
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = 10
	}
	if c.MaxFiles <= 0 {
		c.MaxFiles = 50
	}
	if c.BulkMin <= 0 {
		c.BulkMin = 20
	}
	if c.BulkMax <= c.BulkMin {
		c.BulkMax = 100
	}
}

var categories = []string{"dance", "comedy", "tutorial", "music", "trending", "challenge", "lifestyle", "food"}

// MockFetcher fabricates file records with random engagement metrics
// after a fixed simulated latency per unit.
type MockFetcher struct {
	cfg    Config
	logger logster.Logger
}

func NewMockFetcher(cfg Config, logger logster.Logger) *MockFetcher {
	cfg.fillDefaults()
	return &MockFetcher{
		cfg:    cfg,
		logger: logger.WithField("Layer", "Fetcher"),
	}
}

// UnitCount plans the number of work units for a download. Bulk requests
// pretend to enumerate a whole profile, everything else honors the
// requested limit up to the cap.
func (f *MockFetcher) UnitCount(downloadType string, limit int) int {
	if downloadType == models.DownloadTypeBulk {
		return f.cfg.BulkMin + rand.IntN(f.cfg.BulkMax-f.cfg.BulkMin)
	}
	if limit <= 0 {
		limit = f.cfg.DefaultLimit
	}
	return min(limit, f.cfg.MaxFiles)
}

func (f *MockFetcher) FetchOne(ctx context.Context, download models.Download, index int) (models.InsertDownloadFile, error) {
	// имитируем сетевую задержку
	if f.cfg.UnitDelay > 0 {
		timer := time.NewTimer(f.cfg.UnitDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return models.InsertDownloadFile{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return models.InsertDownloadFile{}, err
	}

	category := categories[rand.IntN(len(categories))]
	filename := fmt.Sprintf("%s_%s_%03d.mp4", sanitizeValue(download.Value), category, index)

	quality := "720p"
	if download.DownloadType == models.DownloadTypeBulk {
		quality = "1080p"
	}
	uploadedAgo := time.Duration(rand.Int64N(int64(90 * 24 * time.Hour)))
	metadata, err := json.Marshal(models.FileMetadata{
		Duration:   fmt.Sprintf("%ds", rand.IntN(180)+15),
		Quality:    quality,
		UploadDate: time.Now().Add(-uploadedAgo).UTC().Format(time.RFC3339),
		Hashtags:   []string{"#fyp", "#viral", "#trending", "#" + category},
	})
	if err != nil {
		return models.InsertDownloadFile{}, fmt.Errorf("marshal file metadata: %w", err)
	}

	f.logger.Debugf("fetched unit %d for download %s: %s", index, download.Id, filename)
	return models.InsertDownloadFile{
		DownloadId: download.Id,
		Filename:   filename,
		Url:        fmt.Sprintf("/downloads/%s/%s", download.Id, filename),
		Size:       fmt.Sprintf("%.1f MB", rand.Float64()*4+0.5),
		Views:      rand.IntN(5000000) + 50000,
		Likes:      rand.IntN(200000) + 500,
		Comments:   rand.IntN(15000) + 50,
		Metadata:   string(metadata),
	}, nil
}

func sanitizeValue(value string) string {
	return strings.TrimPrefix(value, "@")
}
