package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/cfohub/cfohub/internal/jobs"
)

// OmieSyncer completes OMIE synchronisation for payroll lines.
type OmieSyncer interface {
	CompleteOmieSync(ctx context.Context, ids []string) (int, error)
}

// OmieSyncJob records queued payroll lines as synchronised.
type OmieSyncJob struct {
	Syncer  OmieSyncer
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewOmieSyncJob initialises the OMIE sync handler.
func NewOmieSyncJob(syncer OmieSyncer, logger *slog.Logger, metrics *jobmetrics.Metrics) *OmieSyncJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &OmieSyncJob{Syncer: syncer, Logger: logger, Metrics: metrics}
}

// Handle executes TaskOmieSync.
func (j *OmieSyncJob) Handle(ctx context.Context, t *asynq.Task) (err error) {
	if j == nil || j.Syncer == nil {
		return errors.New("omie sync: handler not configured")
	}
	tracker := j.Metrics.Track(TaskOmieSync)
	defer func() { err = tracker.End(err) }()

	var payload OmieSyncPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil || len(payload.IDs) == 0 {
		return asynq.SkipRetry
	}
	done, err := j.Syncer.CompleteOmieSync(ctx, payload.IDs)
	if err != nil {
		j.Logger.Error("omie sync", slog.Any("error", err))
		return err
	}
	j.Logger.Info("omie sync complete", slog.String("job", TaskOmieSync), slog.Int("requested", len(payload.IDs)), slog.Int("synced", done))
	return nil
}
