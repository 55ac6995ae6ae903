package queries_test

import (
	"context"
	"testing"

	"fablab/internal/core/application/usecases/queries"
	"fablab/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogReader struct{ mock.Mock }

func (m *MockCatalogReader) ListVisibleItems(ctx context.Context, nameContains string) ([]queries.CatalogItemView, error) {
	args := m.Called(ctx, nameContains)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.CatalogItemView), args.Error(1)
}

func (m *MockCatalogReader) GetVisibleItem(ctx context.Context, id kernel.UUID) (queries.CatalogItemView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(queries.CatalogItemView), args.Error(1)
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) DraftSummary(ctx context.Context, authorID kernel.UUID) (queries.DraftSummary, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(queries.DraftSummary), args.Error(1)
}

func (m *MockOrderReader) ListPrintings(ctx context.Context, filter queries.PrintingFilter) ([]queries.PrintingView, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.PrintingView), args.Error(1)
}

func (m *MockOrderReader) GetPrinting(ctx context.Context, id kernel.UUID) (queries.PrintingView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(queries.PrintingView), args.Error(1)
}

func mustActor(t *testing.T, staff bool) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), "user@fablab.test", staff)
	require.NoError(t, err)
	return actor
}
