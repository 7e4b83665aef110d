package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"socialdown/internal/Service/fetcher"
	"socialdown/internal/models"
	"socialdown/internal/repository"
	"socialdown/pkg/logster"
)

var (
	downloadsProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialdown_downloads_processed_total",
		Help: "Total number of downloads driven to a terminal state",
	}, []string{"status"})

	downloadProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "socialdown_download_processing_duration_seconds",
		Help:    "Duration of download processing in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})
)

type Config struct {
	// Rate paces unit fetches across all downloads, units per second.
	// Zero or negative disables pacing.
	Rate  float64 `yaml:"rate"`
	Burst int     `yaml:"burst"`
}

// Processor owns the download state machine: it drives one download from
// pending to completed or failed, emitting files through the store as
// each unit finishes. One Run per download id, never concurrently.
type Processor struct {
	db      repository.StorageInterface
	fetcher fetcher.Fetcher
	limiter *rate.Limiter
	logger  logster.Logger
}

func New(cfg Config, db repository.StorageInterface, f fetcher.Fetcher, logger logster.Logger) *Processor {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	var limiter *rate.Limiter
	if cfg.Rate <= 0 {
		limiter = rate.NewLimiter(rate.Inf, burst)
	} else {
		limiter = rate.NewLimiter(rate.Limit(cfg.Rate), burst)
	}
	return &Processor{
		db:      db,
		fetcher: f,
		limiter: limiter,
		logger:  logger.WithField("Layer", "Processor"),
	}
}

// Run drives the download with the given id to a terminal state. The
// caller already returned its HTTP response; failures are only visible
// through subsequent status polls.
func (p *Processor) Run(ctx context.Context, id string) {
	start := time.Now()
	logger := p.logger.WithField("download_id", id)

	err := p.process(ctx, id)
	status := models.StatusCompleted
	switch {
	case err == nil:
		logger.Infof("download completed in %s", time.Since(start))
	case errors.Is(err, models.ErrNotFound):
		// download was never stored, nothing to mark
		status = "missing"
		logger.WithError(err).Warnf("download vanished before processing")
	default:
		status = models.StatusFailed
		logger.WithError(err).Errorf("download processing failed")
		// status write must survive the cancelled worker context
		markCtx := context.WithoutCancel(ctx)
		if markErr := p.db.UpdateStatus(markCtx, id, models.StatusFailed); markErr != nil {
			logger.WithError(markErr).Errorf("fail to mark download failed")
		}
	}

	downloadsProcessedTotal.WithLabelValues(status).Inc()
	downloadProcessingDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}

func (p *Processor) process(ctx context.Context, id string) error {
	if err := p.db.UpdateStatus(ctx, id, models.StatusProcessing, 0); err != nil {
		return err
	}

	download, err := p.db.GetDownload(ctx, id)
	if err != nil {
		return err
	}

	// кол-во юнитов фиксируется один раз и больше не меняется
	count := p.fetcher.UnitCount(download.DownloadType, download.Limit)
	p.logger.Infof("processing download %s: %d units planned", id, count)

	for index := 1; index <= count; index++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("unit %d: %w", index, err)
		}
		file, err := p.fetcher.FetchOne(ctx, download, index)
		if err != nil {
			return fmt.Errorf("fetch unit %d: %w", index, err)
		}
		if _, err := p.db.CreateFile(ctx, file); err != nil {
			return fmt.Errorf("store unit %d: %w", index, err)
		}
		if err := p.db.UpdateProgress(ctx, id, index, count); err != nil {
			return fmt.Errorf("progress unit %d: %w", index, err)
		}
	}

	zipUrl := fmt.Sprintf("/api/downloads/%s/zip", id)
	excelUrl := fmt.Sprintf("/api/downloads/%s/excel", id)
	if err := p.db.UpdateResultURLs(ctx, id, &zipUrl, &excelUrl); err != nil {
		return fmt.Errorf("set result urls: %w", err)
	}

	return p.db.UpdateStatus(ctx, id, models.StatusCompleted, 100)
}
