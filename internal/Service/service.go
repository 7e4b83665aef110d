package Service

import (
	"context"

	"socialdown/internal/models"
	"socialdown/internal/repository"
	"socialdown/pkg/jobrunner"
	"socialdown/pkg/logster"
)

type ServiceInterface interface {
	CreateDownload(ctx context.Context, req models.CreateDownloadRequest) (models.Download, error)
	GetStatus(ctx context.Context, id string) (*models.StatusSnapshot, error)
	ListDownloads(ctx context.Context) ([]models.Download, error)
}

// ProcessorInterface is the piece of the lifecycle controller the
// service needs: drive one download to a terminal state.
type ProcessorInterface interface {
	Run(ctx context.Context, id string)
}

type ServiceObj struct {
	db        repository.StorageInterface
	runner    jobrunner.RunnerInterface
	processor ProcessorInterface
	logger    logster.Logger
}

func NewServiceObj(db repository.StorageInterface, runner jobrunner.RunnerInterface, processor ProcessorInterface, logger logster.Logger) *ServiceObj {
	return &ServiceObj{
		db:        db,
		runner:    runner,
		processor: processor,
		logger:    logger.WithField("Layer", "Service"),
	}
}

// CreateDownload validates the request, stores the pending record and
// kicks off processing in the background. The worker runs on the
// runner's context, not the request's, so it outlives the response.
func (s *ServiceObj) CreateDownload(ctx context.Context, req models.CreateDownloadRequest) (models.Download, error) {
	if err := req.ValidateDownloadType(); err != nil {
		s.logger.WithError(err).Infof("CreateDownload rejected")
		return models.Download{}, err
	}

	download, err := s.db.CreateDownload(ctx, req)
	if err != nil {
		s.logger.WithError(err).Errorf("CreateDownload error")
		return models.Download{}, err
	}

	if err := s.runner.Go(download.Id, func(ctx context.Context) {
		s.processor.Run(ctx, download.Id)
	}); err != nil {
		s.logger.WithError(err).Errorf("fail to start worker for download %s", download.Id)
	}

	return download, nil
}

func (s *ServiceObj) GetStatus(ctx context.Context, id string) (*models.StatusSnapshot, error) {
	download, err := s.db.GetDownload(ctx, id)
	if err != nil {
		return nil, err
	}

	files, err := s.db.ListFiles(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Debugf("GetStatus %s: status %s, %d files", id, download.Status, len(files))
	return &models.StatusSnapshot{Download: download, Files: files}, nil
}

func (s *ServiceObj) ListDownloads(ctx context.Context) ([]models.Download, error) {
	return s.db.ListDownloads(ctx)
}
