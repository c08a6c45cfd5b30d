package jobs

import (
	"context"
	"log/slog"

	"cafe/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRelaySchedule runs the relay every second.
const DefaultRelaySchedule = "* * * * * *"

// OutboxRelayer publishes one batch of pending outbox events.
type OutboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob pushes unpublished outbox events to the broker on a cron schedule.
// A tick that is still running when the next one fires causes that next tick to be skipped.
type OutboxRelayJob struct {
	relayer   OutboxRelayer
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates the relay job. An empty schedule selects
// DefaultRelaySchedule; a non-positive batch size selects commands.MaxRelayBatch.
func NewOutboxRelayJob(relayer OutboxRelayer, schedule string, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}
	if batchSize <= 0 {
		batchSize = commands.MaxRelayBatch
	}
	return &OutboxRelayJob{
		relayer:   relayer,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce relays a single batch. Failures are logged; the events stay
// unpublished and are picked up by the next tick.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) int {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid relay batch size", "error", err)
		return 0
	}

	published, err := j.relayer.Handle(ctx, cmd)
	if err != nil {
		j.logger.WarnContext(ctx, "Outbox relay failed", "published", published, "error", err)
		return published
	}

	if published > 0 {
		j.logger.DebugContext(ctx, "Outbox events relayed", "published", published)
	}
	return published
}

// Stop stops scheduling and waits for a running tick to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
