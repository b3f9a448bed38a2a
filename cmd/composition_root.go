package cmd

import (
	httpadapter "tms/internal/adapters/in/http"
	"tms/internal/adapters/out/postgres"
	"tms/internal/core/application/usecases/commands"
	"tms/internal/core/application/usecases/queries"
	"tms/internal/core/ports"
	"tms/internal/jobs"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot builds the application graph from the loaded configuration.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      clockwork.Clock
	logger     *zap.Logger
}

// NewCompositionRoot shares one unit of work factory between all command handlers.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	clock clockwork.Clock,
	logger *zap.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger, clock),
		clock:      clock,
		logger:     logger,
	}
}

func (c *CompositionRoot) transportOrderUoWFactory() commands.TransportOrderUoWFactory {
	return FuncTransportOrderUoWFactory(func() commands.TransportOrderUoW {
		return c.uowFactory.Create()
	})
}

// CreateCreateTransportOrderCommandHandler builds the create use case.
func (c *CompositionRoot) CreateCreateTransportOrderCommandHandler() commands.CreateTransportOrderCommandHandler {
	return commands.NewCreateTransportOrderCommandHandler(c.transportOrderUoWFactory(), c.clock)
}

// CreateUpdateTransportOrderCommandHandler builds the patch use case.
func (c *CompositionRoot) CreateUpdateTransportOrderCommandHandler() commands.UpdateTransportOrderCommandHandler {
	return commands.NewUpdateTransportOrderCommandHandler(c.transportOrderUoWFactory())
}

// CreateChangeTransportOrderStateCommandHandler builds the state change use case.
func (c *CompositionRoot) CreateChangeTransportOrderStateCommandHandler() commands.ChangeTransportOrderStateCommandHandler {
	return commands.NewChangeTransportOrderStateCommandHandler(c.transportOrderUoWFactory())
}

// CreateReportProblemCommandHandler builds the problem report use case.
func (c *CompositionRoot) CreateReportProblemCommandHandler() commands.ReportProblemCommandHandler {
	return commands.NewReportProblemCommandHandler(c.transportOrderUoWFactory(), c.clock)
}

// CreateStartNextTransportOrderCommandHandler builds the start-next use case.
func (c *CompositionRoot) CreateStartNextTransportOrderCommandHandler() commands.StartNextTransportOrderCommandHandler {
	return commands.NewStartNextTransportOrderCommandHandler(c.transportOrderUoWFactory())
}

// CreateGetTransportOrderQueryHandler builds the single order read.
func (c *CompositionRoot) CreateGetTransportOrderQueryHandler() queries.GetTransportOrderQueryHandler {
	return queries.NewGetTransportOrderQueryHandler(c.gormDB)
}

// CreateListTransportOrdersQueryHandler builds the filtered listing.
func (c *CompositionRoot) CreateListTransportOrdersQueryHandler() queries.ListTransportOrdersQueryHandler {
	return queries.NewListTransportOrdersQueryHandler(c.gormDB)
}

// CreateGetStartableTransportOrdersQueryHandler builds the startable candidates read.
func (c *CompositionRoot) CreateGetStartableTransportOrdersQueryHandler() queries.GetStartableTransportOrdersQueryHandler {
	return queries.NewGetStartableTransportOrdersQueryHandler(c.gormDB)
}

// CreateServer binds every use case to the HTTP endpoints.
func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateTransportOrder:        c.CreateCreateTransportOrderCommandHandler(),
		UpdateTransportOrder:        c.CreateUpdateTransportOrderCommandHandler(),
		ChangeTransportOrderState:   c.CreateChangeTransportOrderStateCommandHandler(),
		ReportProblem:               c.CreateReportProblemCommandHandler(),
		StartNextTransportOrder:     c.CreateStartNextTransportOrderCommandHandler(),
		GetTransportOrder:           c.CreateGetTransportOrderQueryHandler(),
		ListTransportOrders:         c.CreateListTransportOrdersQueryHandler(),
		GetStartableTransportOrders: c.CreateGetStartableTransportOrdersQueryHandler(),
	})
}

// CreateTransportOrderStartJob builds the scheduled start job with the configured schedule.
func (c *CompositionRoot) CreateTransportOrderStartJob() *jobs.TransportOrderStartJob {
	return jobs.NewTransportOrderStartJob(
		c.uowFactory.Create().TransportOrderRepository(),
		c.CreateStartNextTransportOrderCommandHandler(),
		c.cfg.Jobs.StartSchedule,
		c.logger,
	)
}

// CreateJobManager returns the manager of all enabled background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var enabled []jobs.Job
	if c.cfg.Jobs.StartEnabled {
		enabled = append(enabled, c.CreateTransportOrderStartJob())
	}
	return jobs.NewJobManager(enabled...)
}

// FuncTransportOrderUoWFactory adapts a plain function to commands.TransportOrderUoWFactory.
type FuncTransportOrderUoWFactory func() commands.TransportOrderUoW

// Create calls f.
func (f FuncTransportOrderUoWFactory) Create() commands.TransportOrderUoW {
	return f()
}
