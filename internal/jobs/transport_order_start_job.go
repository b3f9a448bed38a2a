package jobs

import (
	"context"
	"errors"
	"sync"

	"tms/internal/core/application/usecases/commands"
	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultStartSchedule runs the start job every five seconds.
const DefaultStartSchedule = "*/5 * * * * *"

// TransportUnitLister finds the transport units that have orders waiting to
// be started.
type TransportUnitLister interface {
	FindTransportUnitsWithStartableOrders(ctx context.Context) ([]kernel.Barcode, error)
}

// StartNextTransportOrderHandler starts the next order of one unit.
type StartNextTransportOrderHandler interface {
	Handle(ctx context.Context, cmd commands.StartNextTransportOrderCommand) (kernel.UUID, error)
}

// TransportOrderStartJob starts the next order of every idle transport unit.
// A unit is idle when none of its orders is STARTED.
type TransportOrderStartJob struct {
	units    TransportUnitLister
	handler  StartNextTransportOrderHandler
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewTransportOrderStartJob runs on schedule, a six field cron expression with seconds.
func NewTransportOrderStartJob(
	units TransportUnitLister,
	handler StartNextTransportOrderHandler,
	schedule string,
	logger *zap.Logger,
) *TransportOrderStartJob {
	if schedule == "" {
		schedule = DefaultStartSchedule
	}
	logger = logger.With(zap.String("component", "transport_order_start_job"))
	ctx, cancel := context.WithCancel(context.Background())

	return &TransportOrderStartJob{
		units:    units,
		handler:  handler,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger(logger))),
		),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Name identifies the job in logs.
func (j *TransportOrderStartJob) Name() string {
	return "transport order start job"
}

// Start schedules the job.
func (j *TransportOrderStartJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(j.ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop cancels a running pass and waits for it to return.
func (j *TransportOrderStartJob) Stop() {
	j.once.Do(func() {
		j.cancel()
		<-j.cron.Stop().Done()
		j.logger.Info("job stopped")
	})
}

// RunOnce makes one pass over all transport units with startable orders and
// returns the number of orders it started. Units that are busy or have
// nothing to start are skipped silently.
func (j *TransportOrderStartJob) RunOnce(ctx context.Context) int {
	units, err := j.units.FindTransportUnitsWithStartableOrders(ctx)
	if err != nil {
		j.logger.Error("failed to find transport units", zap.Error(err))
		return 0
	}

	started := 0
	for _, unit := range units {
		if ctx.Err() != nil {
			break
		}

		cmd, err := commands.NewStartNextTransportOrderCommand(unit)
		if err != nil {
			j.logger.Error("invalid transport unit", zap.String("transport_unit", unit.String()), zap.Error(err))
			continue
		}

		id, err := j.handler.Handle(ctx, cmd)
		switch {
		case err == nil:
			started++
			j.logger.Info("transport order started",
				zap.String("transport_unit", unit.String()),
				zap.String("order_id", id.String()))
		case errors.Is(err, services.ErrTransportUnitIsBusy), errors.Is(err, services.ErrNoStartableOrder):
			j.logger.Debug("nothing to start", zap.String("transport_unit", unit.String()), zap.Error(err))
		default:
			j.logger.Error("failed to start transport order",
				zap.String("transport_unit", unit.String()),
				zap.Error(err))
		}
	}
	return started
}
