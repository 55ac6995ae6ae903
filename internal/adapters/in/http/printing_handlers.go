package http

import (
	"net/http"
	"time"

	"fablab/internal/core/application/usecases/commands"
	"fablab/internal/core/application/usecases/queries"
	"fablab/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

type RenamePrintingRequest struct {
	Name string `json:"name"`
}

type FormPrintingRequest struct {
	Name string `json:"name"`
}

type ResolvePrintingRequest struct {
	Status string `json:"status"`
}

// ListPrintings handles GET /api/v1/printings.
func (s *Server) ListPrintings(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var (
		status   *string
		from, to *time.Time
	)
	if err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter status").SetInternal(err)
	}
	if err = runtime.BindQueryParameter("form", true, false, "start_date", ctx.QueryParams(), &from); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter start_date").SetInternal(err)
	}
	if err = runtime.BindQueryParameter("form", true, false, "end_date", ctx.QueryParams(), &to); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter end_date").SetInternal(err)
	}

	// a bare date as the upper bound covers that whole day
	if to != nil && len(ctx.QueryParam("end_date")) == len(time.DateOnly) {
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		to = &endOfDay
	}

	query, err := queries.NewListOrdersQuery(actor, deref(status), from, to)
	if err != nil {
		return err
	}
	views, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, views)
}

// GetPrinting handles GET /api/v1/printings/:id.
func (s *Server) GetPrinting(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	return s.respondWithPrinting(ctx, actor, id)
}

// RenamePrinting handles PUT /api/v1/printings/:id.
func (s *Server) RenamePrinting(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req RenamePrintingRequest
	if err = bindBody(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRenameOrderCommand(actor, id, req.Name)
	if err != nil {
		return err
	}
	if _, err = s.h.RenameOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithPrinting(ctx, actor, id)
}

// FormPrinting handles POST /api/v1/printings/:id/form.
func (s *Server) FormPrinting(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req FormPrintingRequest
	if err = bindBody(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewFormOrderCommand(actor, id, req.Name)
	if err != nil {
		return err
	}
	if _, err = s.h.FormOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithPrinting(ctx, actor, id)
}

// ResolvePrinting handles POST /api/v1/printings/:id/complete.
func (s *Server) ResolvePrinting(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req ResolvePrintingRequest
	if err = bindBody(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewResolveOrderCommand(actor, id, req.Status)
	if err != nil {
		return err
	}
	if _, err = s.h.ResolveOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithPrinting(ctx, actor, id)
}

// DeletePrinting handles DELETE /api/v1/printings/:id.
func (s *Server) DeletePrinting(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(actor, id)
	if err != nil {
		return err
	}
	if err = s.h.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// respondWithPrinting renders the detail projection as the viewer sees it.
func (s *Server) respondWithPrinting(ctx echo.Context, viewer kernel.Actor, id kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(viewer, id)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}
