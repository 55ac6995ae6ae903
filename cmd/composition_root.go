package cmd

import (
	"log/slog"

	httpadapter "fablab/internal/adapters/in/http"
	"fablab/internal/core/application/usecases/commands"
	"fablab/internal/core/application/usecases/queries"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/ports"
	"fablab/internal/jobs"
	"fablab/internal/metrics"
)

// OrderReader is the read side of printings plus the per-status counts the
// stats job needs.
type OrderReader interface {
	queries.OrderReader
	jobs.PrintingCounter
}

// Infrastructure holds the outbound adapters chosen from configuration.
type Infrastructure struct {
	UoWFactory    ports.UnitOfWorkFactory
	CatalogReader queries.CatalogReader
	OrderReader   OrderReader
	Assets        ports.AssetStore
	Publisher     ports.OrderEventPublisher
}

type CompositionRoot struct {
	configs Config
	infra   Infrastructure
	metrics *metrics.OrderMetrics
	clock   kernel.Clock
	logger  *slog.Logger
}

func NewCompositionRoot(configs Config, infra Infrastructure, orderMetrics *metrics.OrderMetrics, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs: configs,
		infra:   infra,
		metrics: orderMetrics,
		clock:   kernel.SystemClock{},
		logger:  logger,
	}
}

func (c *CompositionRoot) uowFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.infra.UoWFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.infra.UoWFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.infra.UoWFactory.Create()
	})
}

func (c *CompositionRoot) transitionNotifier() commands.TransitionNotifier {
	return commands.NewTransitionNotifier(c.infra.Publisher, c.metrics, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCreateCatalogItemCommandHandler() commands.CreateCatalogItemCommandHandler {
	return commands.NewCreateCatalogItemCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCatalogItemCommandHandler() commands.UpdateCatalogItemCommandHandler {
	return commands.NewUpdateCatalogItemCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateDeleteCatalogItemCommandHandler() commands.DeleteCatalogItemCommandHandler {
	return commands.NewDeleteCatalogItemCommandHandler(c.catalogUoWFactory(), c.infra.Assets, c.logger)
}

func (c *CompositionRoot) CreateAttachCatalogImageCommandHandler() commands.AttachCatalogImageCommandHandler {
	return commands.NewAttachCatalogImageCommandHandler(c.catalogUoWFactory(), c.infra.Assets, c.logger)
}

func (c *CompositionRoot) CreateAddLineItemCommandHandler() commands.AddLineItemCommandHandler {
	return commands.NewAddLineItemCommandHandler(c.uowFactory(), c.clock, c.metrics)
}

func (c *CompositionRoot) CreateUpdateLineItemCommandHandler() commands.UpdateLineItemCommandHandler {
	return commands.NewUpdateLineItemCommandHandler(c.orderUoWFactory(), c.metrics)
}

func (c *CompositionRoot) CreateRemoveLineItemCommandHandler() commands.RemoveLineItemCommandHandler {
	return commands.NewRemoveLineItemCommandHandler(c.orderUoWFactory(), c.metrics)
}

func (c *CompositionRoot) CreateRenameOrderCommandHandler() commands.RenameOrderCommandHandler {
	return commands.NewRenameOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateFormOrderCommandHandler() commands.FormOrderCommandHandler {
	return commands.NewFormOrderCommandHandler(c.orderUoWFactory(), c.clock, c.transitionNotifier())
}

func (c *CompositionRoot) CreateResolveOrderCommandHandler() commands.ResolveOrderCommandHandler {
	return commands.NewResolveOrderCommandHandler(c.uowFactory(), c.clock, c.transitionNotifier())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.transitionNotifier())
}

func (c *CompositionRoot) CreateListCatalogItemsQueryHandler() queries.ListCatalogItemsQueryHandler {
	return queries.NewListCatalogItemsQueryHandler(c.infra.CatalogReader, c.infra.OrderReader)
}

func (c *CompositionRoot) CreateGetCatalogItemQueryHandler() queries.GetCatalogItemQueryHandler {
	return queries.NewGetCatalogItemQueryHandler(c.infra.CatalogReader)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.infra.OrderReader)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.infra.OrderReader)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewOrderStatsJob(c.infra.OrderReader, c.metrics, c.configs.OrderStatsSchedule, c.logger),
	)
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateCatalogItem: c.CreateCreateCatalogItemCommandHandler(),
		UpdateCatalogItem: c.CreateUpdateCatalogItemCommandHandler(),
		DeleteCatalogItem: c.CreateDeleteCatalogItemCommandHandler(),
		AttachImage:       c.CreateAttachCatalogImageCommandHandler(),
		AddLineItem:       c.CreateAddLineItemCommandHandler(),
		UpdateLineItem:    c.CreateUpdateLineItemCommandHandler(),
		RemoveLineItem:    c.CreateRemoveLineItemCommandHandler(),
		RenameOrder:       c.CreateRenameOrderCommandHandler(),
		FormOrder:         c.CreateFormOrderCommandHandler(),
		ResolveOrder:      c.CreateResolveOrderCommandHandler(),
		DeleteOrder:       c.CreateDeleteOrderCommandHandler(),
		ListCatalogItems:  c.CreateListCatalogItemsQueryHandler(),
		GetCatalogItem:    c.CreateGetCatalogItemQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
	})
}

func (c *CompositionRoot) CreateIdentity() *httpadapter.Identity {
	return httpadapter.NewIdentity(c.configs.JWTSecret)
}
