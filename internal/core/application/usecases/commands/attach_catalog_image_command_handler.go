package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"fablab/internal/core/domain/model/catalog"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/ports"
	"fablab/internal/pkg/errs"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gosimple/slug"
)

// AttachCatalogImageCommandHandler stores an image in the asset store and
// records its reference on the item. A replaced image is released after the
// new reference is committed.
type AttachCatalogImageCommandHandler struct {
	uowFactory CatalogUoWFactory
	assets     ports.AssetStore
	logger     *slog.Logger
}

func NewAttachCatalogImageCommandHandler(
	uowFactory CatalogUoWFactory,
	assets ports.AssetStore,
	logger *slog.Logger,
) AttachCatalogImageCommandHandler {
	return AttachCatalogImageCommandHandler{
		uowFactory: uowFactory,
		assets:     assets,
		logger:     logger.With("component", "AttachCatalogImageCommandHandler"),
	}
}

func (h AttachCatalogImageCommandHandler) Handle(ctx context.Context, cmd AttachCatalogImageCommand) (*catalog.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := requireStaff(cmd.Actor(), "attach catalog image"); err != nil {
		return nil, err
	}

	mtype := mimetype.Detect(cmd.Data())
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, errs.NewValueIsInvalidErrorWithCause("image", fmt.Errorf("%s is not an image", mtype.String()))
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CatalogRepository()
	item, err := getVisibleItem(ctx, repo, cmd.ItemID())
	if err != nil {
		return nil, err
	}
	previous := item.ImageURL()

	ref, err := h.assets.Put(ctx, ImageKey(item.ID(), cmd.Filename(), mtype.Extension()), cmd.Data(), mtype.String())
	if err != nil {
		return nil, err
	}

	if err = item.AttachImage(ref); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, item); err != nil {
		h.release(ctx, item.ID(), ref)
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		h.release(ctx, item.ID(), ref)
		return nil, err
	}

	if previous != "" && previous != ref {
		h.release(ctx, item.ID(), previous)
	}

	return item, nil
}

func (h AttachCatalogImageCommandHandler) release(ctx context.Context, id kernel.UUID, ref string) {
	if err := h.assets.Remove(ctx, ref); err != nil {
		h.logger.WarnContext(ctx, "failed to release catalog image",
			"jobId", id.String(),
			"image", ref,
			"error", err,
		)
	}
}

// ImageKey names the object for an item image: job_<id>_<slugged name><ext>.
// The extension comes from the sniffed content type when the filename has none.
func ImageKey(id kernel.UUID, filename, sniffedExt string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if ext == "" {
		ext = sniffedExt
	}

	name := slug.Make(base)
	if name == "" {
		name = "image"
	}
	return fmt.Sprintf("job_%s_%s%s", id.String(), name, ext)
}
