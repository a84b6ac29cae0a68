package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/cfohub/cfohub/internal/jobs"
)

// ReminderGenerator creates the reminders due today.
type ReminderGenerator interface {
	Generate(ctx context.Context) (int, error)
}

// ReminderJob runs reminder generation, hourly through cron and on demand.
type ReminderJob struct {
	Generator ReminderGenerator
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
}

// NewReminderJob initialises the reminder generation handler.
func NewReminderJob(gen ReminderGenerator, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReminderJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReminderJob{Generator: gen, Logger: logger, Metrics: metrics}
}

// Handle executes TaskReminderGenerate.
func (j *ReminderJob) Handle(ctx context.Context, _ *asynq.Task) (err error) {
	if j == nil || j.Generator == nil {
		return errors.New("reminder generation: handler not configured")
	}
	tracker := j.Metrics.Track(TaskReminderGenerate)
	defer func() { err = tracker.End(err) }()

	created, err := j.Generator.Generate(ctx)
	if err != nil {
		j.Logger.Error("generate reminders", slog.Any("error", err))
		return err
	}
	j.Logger.Info("reminders generated", slog.String("job", TaskReminderGenerate), slog.Int("created", created))
	return nil
}
