package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"socialdown/internal/models"
	"socialdown/pkg/logster"
)

const defaultLimit = 10

type StorageInterface interface {
	CreateDownload(ctx context.Context, req models.CreateDownloadRequest) (models.Download, error)
	GetDownload(ctx context.Context, id string) (models.Download, error)
	ListDownloads(ctx context.Context) ([]models.Download, error)
	UpdateStatus(ctx context.Context, id, status string, progress ...int) error
	UpdateResultURLs(ctx context.Context, id string, zipUrl, excelUrl *string) error
	UpdateProgress(ctx context.Context, id string, completedFiles, totalFiles int) error
	CreateFile(ctx context.Context, file models.InsertDownloadFile) (models.DownloadFile, error)
	ListFiles(ctx context.Context, downloadId string) ([]models.DownloadFile, error)
}

// downloadRecord keeps the insertion sequence next to the value so that
// listing can break createdAt ties in arrival order.
type downloadRecord struct {
	download models.Download
	seq      int
}

// Storage is the in-memory store for downloads and their files. Records
// are stored and returned by value, so a reader never observes a half
// written update.
type Storage struct {
	mu        sync.RWMutex
	downloads map[string]downloadRecord
	files     map[string][]models.DownloadFile
	seq       int
	logger    logster.Logger
}

func NewStorage(logger logster.Logger) *Storage {
	return &Storage{
		downloads: make(map[string]downloadRecord),
		files:     make(map[string][]models.DownloadFile),
		logger:    logger.WithField("Layer", "Repository"),
	}
}

func (s *Storage) CreateDownload(ctx context.Context, req models.CreateDownloadRequest) (models.Download, error) {
	select {
	default:
	case <-ctx.Done():
		s.logger.WithError(ctx.Err()).Errorf("CreateDownload: context expire")
		return models.Download{}, ctx.Err()
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	download := models.Download{
		Id:           uuid.NewString(),
		Platform:     req.Platform,
		DownloadType: req.DownloadType,
		Value:        req.Value,
		Limit:        limit,
		Status:       models.StatusPending,
		CreatedAt:    time.Now().UTC(),
	}

	s.mu.Lock()
	s.seq++
	s.downloads[download.Id] = downloadRecord{download: download, seq: s.seq}
	s.mu.Unlock()

	s.logger.Infof("CreateDownload: download added with Id: %s", download.Id)
	return download, nil
}

func (s *Storage) GetDownload(ctx context.Context, id string) (models.Download, error) {
	select {
	default:
	case <-ctx.Done():
		s.logger.WithError(ctx.Err()).Errorf("GetDownload: context expire")
		return models.Download{}, ctx.Err()
	}

	s.mu.RLock()
	rec, ok := s.downloads[id]
	s.mu.RUnlock()
	if !ok {
		return models.Download{}, models.ErrNotFound
	}
	return rec.download, nil
}

func (s *Storage) ListDownloads(ctx context.Context) ([]models.Download, error) {
	select {
	default:
	case <-ctx.Done():
		s.logger.WithError(ctx.Err()).Errorf("ListDownloads: context expire")
		return nil, ctx.Err()
	}

	s.mu.RLock()
	records := make([]downloadRecord, 0, len(s.downloads))
	for _, rec := range s.downloads {
		records = append(records, rec)
	}
	s.mu.RUnlock()

	// newest first, createdAt ties in insertion order
	sort.Slice(records, func(i, j int) bool {
		if records[i].download.CreatedAt.Equal(records[j].download.CreatedAt) {
			return records[i].seq < records[j].seq
		}
		return records[i].download.CreatedAt.After(records[j].download.CreatedAt)
	})

	downloads := make([]models.Download, 0, len(records))
	for _, rec := range records {
		downloads = append(downloads, rec.download)
	}
	return downloads, nil
}

func (s *Storage) UpdateStatus(ctx context.Context, id, status string, progress ...int) error {
	select {
	default:
	case <-ctx.Done():
		s.logger.WithError(ctx.Err()).Errorf("UpdateStatus: context expire")
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.downloads[id]
	if !ok {
		s.logger.Warnf("UpdateStatus: unknown download Id: %s", id)
		return models.ErrNotFound
	}
	rec.download.Status = status
	if len(progress) > 0 {
		rec.download.Progress = progress[0]
	}
	s.downloads[id] = rec
	return nil
}

func (s *Storage) UpdateResultURLs(ctx context.Context, id string, zipUrl, excelUrl *string) error {
	select {
	default:
	case <-ctx.Done():
		s.logger.WithError(ctx.Err()).Errorf("UpdateResultURLs: context expire")
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.downloads[id]
	if !ok {
		s.logger.Warnf("UpdateResultURLs: unknown download Id: %s", id)
		return models.ErrNotFound
	}
	if zipUrl != nil {
		rec.download.ZipUrl = zipUrl
	}
	if excelUrl != nil {
		rec.download.ExcelUrl = excelUrl
	}
	s.downloads[id] = rec
	return nil
}

func (s *Storage) UpdateProgress(ctx context.Context, id string, completedFiles, totalFiles int) error {
	select {
	default:
	case <-ctx.Done():
		s.logger.WithError(ctx.Err()).Errorf("UpdateProgress: context expire")
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.downloads[id]
	if !ok {
		s.logger.Warnf("UpdateProgress: unknown download Id: %s", id)
		return models.ErrNotFound
	}
	rec.download.CompletedFiles = completedFiles
	rec.download.TotalFiles = totalFiles
	if totalFiles > 0 {
		rec.download.Progress = int(float64(completedFiles)/float64(totalFiles)*100 + 0.5)
	} else {
		rec.download.Progress = 0
	}
	s.downloads[id] = rec
	return nil
}

func (s *Storage) CreateFile(ctx context.Context, file models.InsertDownloadFile) (models.DownloadFile, error) {
	select {
	default:
	case <-ctx.Done():
		s.logger.WithError(ctx.Err()).Errorf("CreateFile: context expire")
		return models.DownloadFile{}, ctx.Err()
	}

	stored := models.DownloadFile{
		Id:         uuid.NewString(),
		DownloadId: file.DownloadId,
		Filename:   file.Filename,
		Url:        file.Url,
		Size:       file.Size,
		Views:      file.Views,
		Likes:      file.Likes,
		Comments:   file.Comments,
		Metadata:   file.Metadata,
	}

	s.mu.Lock()
	s.files[file.DownloadId] = append(s.files[file.DownloadId], stored)
	s.mu.Unlock()

	s.logger.Debugf("CreateFile: file %s added to download %s", stored.Filename, stored.DownloadId)
	return stored, nil
}

func (s *Storage) ListFiles(ctx context.Context, downloadId string) ([]models.DownloadFile, error) {
	select {
	default:
	case <-ctx.Done():
		s.logger.WithError(ctx.Err()).Errorf("ListFiles: context expire")
		return nil, ctx.Err()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	files := make([]models.DownloadFile, len(s.files[downloadId]))
	copy(files, s.files[downloadId])
	return files, nil
}
