package http

import (
	"io"
	"net/http"

	"fablab/internal/core/application/usecases/commands"
	"fablab/internal/core/application/usecases/queries"
	"fablab/internal/core/domain/model/catalog"
	"fablab/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

type CreateJobRequest struct {
	Name        string `json:"name"`
	Description string `json:"info"`
	Price       int64  `json:"price"`
}

type UpdateJobRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"info"`
	Price       *int64  `json:"price"`
}

// ListJobs handles GET /api/v1/jobs.
func (s *Server) ListJobs(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var name *string
	if err = runtime.BindQueryParameter("form", true, false, "job_name", ctx.QueryParams(), &name); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid format for parameter job_name").SetInternal(err)
	}

	query, err := queries.NewListCatalogItemsQuery(actor, deref(name))
	if err != nil {
		return err
	}
	resp, err := s.h.ListCatalogItems.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, resp)
}

// GetJob handles GET /api/v1/jobs/:id.
func (s *Server) GetJob(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetCatalogItemQuery(id)
	if err != nil {
		return err
	}
	view, err := s.h.GetCatalogItem.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

// CreateJob handles POST /api/v1/jobs.
func (s *Server) CreateJob(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var req CreateJobRequest
	if err = bindBody(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateCatalogItemCommand(actor, kernel.NewUUID(), req.Name, req.Description, req.Price)
	if err != nil {
		return err
	}
	item, err := s.h.CreateCatalogItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, catalogItemView(item))
}

// UpdateJob handles PUT /api/v1/jobs/:id.
func (s *Server) UpdateJob(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var req UpdateJobRequest
	if err = bindBody(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateCatalogItemCommand(actor, id, catalog.Changes{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	item, err := s.h.UpdateCatalogItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, catalogItemView(item))
}

// DeleteJob handles DELETE /api/v1/jobs/:id.
func (s *Server) DeleteJob(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteCatalogItemCommand(actor, id)
	if err != nil {
		return err
	}
	if err = s.h.DeleteCatalogItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AttachJobImage handles POST /api/v1/jobs/:id/image with a multipart
// "image" file.
func (s *Server) AttachJobImage(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	header, err := ctx.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required").SetInternal(err)
	}
	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	// one byte over the limit is enough for the command to reject it
	data, err := io.ReadAll(io.LimitReader(file, commands.MaxImageSize+1))
	if err != nil {
		return err
	}

	cmd, err := commands.NewAttachCatalogImageCommand(actor, id, header.Filename, data)
	if err != nil {
		return err
	}
	item, err := s.h.AttachImage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, catalogItemView(item))
}

func catalogItemView(item *catalog.Item) queries.CatalogItemView {
	view := queries.CatalogItemView{
		ID:          item.ID(),
		Name:        item.Name(),
		Description: item.Description(),
		Price:       item.Price().Amount(),
		Status:      item.Visibility().String(),
	}
	if url := item.ImageURL(); url != "" {
		view.ImageURL = &url
	}
	return view
}
