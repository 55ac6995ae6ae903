package http

import (
	"net/http"

	"fablab/internal/core/application/usecases/commands"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type AddLineItemRequest struct {
	Quantity *int `json:"quantity"`
}

type UpdateLineItemRequest struct {
	Quantity *int `json:"quantity"`
}

// LineItemResponse describes a draft line after a cart change. Removed is
// set when an update dropped the line.
type LineItemResponse struct {
	JobID    kernel.UUID `json:"job_id"`
	Quantity int         `json:"quantity"`
	Removed  bool        `json:"removed,omitempty"`
}

// AddLineItem handles POST /api/v1/jobs/:id/printing.
func (s *Server) AddLineItem(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	jobID, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req AddLineItemRequest
	if err = bindBody(ctx, &req); err != nil {
		return err
	}
	quantity := kernel.DefaultQuantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cmd, err := commands.NewAddLineItemCommand(actor, jobID, quantity)
	if err != nil {
		return err
	}
	line, err := s.h.AddLineItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, lineItemResponse(line))
}

// UpdateLineItem handles PUT /api/v1/jobs/:id/printing.
func (s *Server) UpdateLineItem(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	jobID, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req UpdateLineItemRequest
	if err = bindBody(ctx, &req); err != nil {
		return err
	}
	if req.Quantity == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity is required")
	}

	cmd, err := commands.NewUpdateLineItemCommand(actor, jobID, *req.Quantity)
	if err != nil {
		return err
	}
	res, err := s.h.UpdateLineItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	if res.Removed {
		return ctx.JSON(http.StatusOK, LineItemResponse{JobID: jobID, Removed: true})
	}
	return ctx.JSON(http.StatusOK, lineItemResponse(res.Item))
}

// RemoveLineItem handles DELETE /api/v1/jobs/:id/printing.
func (s *Server) RemoveLineItem(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	jobID, err := pathID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveLineItemCommand(actor, jobID)
	if err != nil {
		return err
	}
	if err = s.h.RemoveLineItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func lineItemResponse(line order.LineItem) LineItemResponse {
	return LineItemResponse{
		JobID:    line.JobID(),
		Quantity: line.Quantity().Value(),
	}
}
