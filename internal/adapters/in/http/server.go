package http

import (
	"net/http"

	"fablab/internal/core/application/usecases/commands"
	"fablab/internal/core/application/usecases/queries"
	"fablab/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Handlers groups the use cases the HTTP API exposes.
type Handlers struct {
	// Catalog commands
	CreateCatalogItem commands.CreateCatalogItemCommandHandler
	UpdateCatalogItem commands.UpdateCatalogItemCommandHandler
	DeleteCatalogItem commands.DeleteCatalogItemCommandHandler
	AttachImage       commands.AttachCatalogImageCommandHandler

	// Cart commands
	AddLineItem    commands.AddLineItemCommandHandler
	UpdateLineItem commands.UpdateLineItemCommandHandler
	RemoveLineItem commands.RemoveLineItemCommandHandler

	// Printing commands
	RenameOrder  commands.RenameOrderCommandHandler
	FormOrder    commands.FormOrderCommandHandler
	ResolveOrder commands.ResolveOrderCommandHandler
	DeleteOrder  commands.DeleteOrderCommandHandler

	// Query handlers
	ListCatalogItems queries.ListCatalogItemsQueryHandler
	GetCatalogItem   queries.GetCatalogItemQueryHandler
	ListOrders       queries.ListOrdersQueryHandler
	GetOrder         queries.GetOrderQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// RegisterHandlers mounts the API routes on router. Middlewares apply to the
// /api/v1 group only.
func RegisterHandlers(router *echo.Echo, s *Server, middlewares ...echo.MiddlewareFunc) {
	api := router.Group("/api/v1", middlewares...)

	api.GET("/jobs", s.ListJobs)
	api.POST("/jobs", s.CreateJob)
	api.GET("/jobs/:id", s.GetJob)
	api.PUT("/jobs/:id", s.UpdateJob)
	api.DELETE("/jobs/:id", s.DeleteJob)
	api.POST("/jobs/:id/image", s.AttachJobImage)

	api.POST("/jobs/:id/printing", s.AddLineItem)
	api.PUT("/jobs/:id/printing", s.UpdateLineItem)
	api.DELETE("/jobs/:id/printing", s.RemoveLineItem)

	api.GET("/printings", s.ListPrintings)
	api.GET("/printings/:id", s.GetPrinting)
	api.PUT("/printings/:id", s.RenamePrinting)
	api.DELETE("/printings/:id", s.DeletePrinting)
	api.POST("/printings/:id/form", s.FormPrinting)
	api.POST("/printings/:id/complete", s.ResolvePrinting)
}

// pathID binds the :id path parameter.
func pathID(ctx echo.Context) (kernel.UUID, error) {
	var id kernel.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter id").SetInternal(err)
	}
	return id, nil
}

// bindBody decodes an optional JSON body; an empty body leaves dest as is.
func bindBody(ctx echo.Context, dest any) error {
	if ctx.Request().ContentLength == 0 {
		return nil
	}
	if err := ctx.Bind(dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
