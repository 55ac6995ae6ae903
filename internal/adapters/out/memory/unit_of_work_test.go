package memory_test

import (
	"context"
	"testing"
	"time"

	"fablab/internal/adapters/out/memory"
	"fablab/internal/core/domain/model/catalog"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraft(t *testing.T, author kernel.UUID) *order.Printing {
	t.Helper()
	draft, err := order.NewDraft(kernel.NewUUID(), author, time.Now().UTC())
	require.NoError(t, err)
	return draft
}

func TestUnitOfWork_StagedWritesInvisibleUntilCommit(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	item, err := catalog.NewItem(kernel.NewUUID(), "Laser cutting", "", 700)
	require.NoError(t, err)

	writer := factory.Create()
	require.NoError(t, writer.Begin(ctx))
	require.NoError(t, writer.CatalogRepository().Add(ctx, item))

	_, err = writer.CatalogRepository().Get(ctx, item.ID())
	require.NoError(t, err, "own staged write is visible")

	_, err = factory.Create().CatalogRepository().Get(ctx, item.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	require.NoError(t, writer.Commit(ctx))
	_, err = factory.Create().CatalogRepository().Get(ctx, item.ID())
	require.NoError(t, err)
}

func TestUnitOfWork_RollbackDiscards(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	draft := newDraft(t, kernel.NewUUID())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, draft))
	require.NoError(t, uow.Rollback(ctx))
	require.NoError(t, uow.Rollback(ctx))

	_, err := factory.Create().OrderRepository().Get(ctx, draft.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUnitOfWork_CommitWithoutBegin(t *testing.T) {
	uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()
	require.ErrorIs(t, uow.Commit(context.Background()), memory.ErrTransactionNotActive)
}

func TestUnitOfWork_SecondDraftRejectedAtCommit(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	author := kernel.NewUUID()

	first := factory.Create()
	second := factory.Create()
	require.NoError(t, first.Begin(ctx))
	require.NoError(t, second.Begin(ctx))

	require.NoError(t, first.OrderRepository().Add(ctx, newDraft(t, author)))
	require.NoError(t, second.OrderRepository().Add(ctx, newDraft(t, author)))

	require.NoError(t, first.Commit(ctx))
	require.ErrorIs(t, second.Commit(ctx), errs.ErrConcurrencyConflict)

	_, err := factory.Create().OrderRepository().GetDraftByAuthor(ctx, author)
	require.NoError(t, err)
}

func TestUnitOfWork_StaleUpdateConflicts(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	draft := newDraft(t, kernel.NewUUID())
	require.NoError(t, factory.Create().OrderRepository().Add(ctx, draft))

	first := factory.Create()
	second := factory.Create()
	require.NoError(t, first.Begin(ctx))
	require.NoError(t, second.Begin(ctx))

	a, err := first.OrderRepository().Get(ctx, draft.ID())
	require.NoError(t, err)
	b, err := second.OrderRepository().Get(ctx, draft.ID())
	require.NoError(t, err)

	require.NoError(t, a.Rename("first"))
	require.NoError(t, first.OrderRepository().Update(ctx, a))
	assert.Equal(t, 1, a.Version())

	require.NoError(t, b.Rename("second"))
	require.NoError(t, second.OrderRepository().Update(ctx, b), "stale only once the first commits")

	require.NoError(t, first.Commit(ctx))
	require.ErrorIs(t, second.Commit(ctx), errs.ErrConcurrencyConflict)

	loaded, err := factory.Create().OrderRepository().Get(ctx, draft.ID())
	require.NoError(t, err)
	assert.Equal(t, "first", loaded.Name())
	assert.Equal(t, 1, loaded.Version())
}

func TestUnitOfWork_UpdateAfterForeignCommitConflictsImmediately(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	draft := newDraft(t, kernel.NewUUID())
	require.NoError(t, factory.Create().OrderRepository().Add(ctx, draft))

	stale, err := factory.Create().OrderRepository().Get(ctx, draft.ID())
	require.NoError(t, err)

	require.NoError(t, draft.Rename("fresh"))
	require.NoError(t, factory.Create().OrderRepository().Update(ctx, draft))

	require.NoError(t, stale.Rename("stale"))
	err = factory.Create().OrderRepository().Update(ctx, stale)
	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	assert.Equal(t, 0, stale.Version())
}

func TestUnitOfWork_FormedDraftFreesAuthorSlot(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	author := kernel.NewUUID()
	draft := newDraft(t, author)
	_, err := draft.AddItem(kernel.NewUUID(), mustQuantity(t, 1))
	require.NoError(t, err)
	require.NoError(t, factory.Create().OrderRepository().Add(ctx, draft))

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, draft.Form("Panel", time.Now().UTC()))
	require.NoError(t, uow.OrderRepository().Update(ctx, draft))
	require.NoError(t, uow.OrderRepository().Add(ctx, newDraft(t, author)))
	require.NoError(t, uow.Commit(ctx))
}

func TestUnitOfWork_ReturnedAggregatesAreCopies(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	draft := newDraft(t, kernel.NewUUID())
	require.NoError(t, factory.Create().OrderRepository().Add(ctx, draft))

	loaded, err := factory.Create().OrderRepository().Get(ctx, draft.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.Rename("local change"))

	again, err := factory.Create().OrderRepository().Get(ctx, draft.ID())
	require.NoError(t, err)
	assert.Empty(t, again.Name())
}

func mustQuantity(t *testing.T, v int) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantity(v)
	require.NoError(t, err)
	return q
}
