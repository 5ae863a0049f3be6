package jobs

import (
	"context"
	"time"

	"deliverytracking/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	everySecond  = "* * * * * *"
	relayTimeout = 30 * time.Second
)

// OutboxRelayer publishes one batch of stored events.
type OutboxRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob drains the transactional outbox every second. A run still in
// progress makes the next tick skip.
type OutboxRelayJob struct {
	relayer   OutboxRelayer
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewOutboxRelayJob(relayer OutboxRelayer, batchSize int, logger *zap.Logger) *OutboxRelayJob {
	log := logger.Named("outbox_relay_job")
	return &OutboxRelayJob{
		relayer:   relayer,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{log.Sugar()})),
		),
		logger: log,
	}
}

// Start schedules the relay to run every second.
func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(everySecond, func() { j.run(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Outbox relay job started (running every second)", zap.Int("batch_size", j.batchSize))
	return nil
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Outbox relay job stopped")
}

func (j *OutboxRelayJob) run(cmd commands.RelayOutboxCommand) {
	ctx, cancel := context.WithTimeout(context.Background(), relayTimeout)
	defer cancel()

	published, err := j.relayer.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("Outbox relay job failed", zap.Error(err))
		return
	}
	if published > 0 {
		j.logger.Debug("Outbox messages published", zap.Int("count", published))
	}
}

// cronLogger feeds cron's own messages into zap.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
