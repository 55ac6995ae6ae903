package services_test

import (
	"math"
	"testing"
	"time"

	"fablab/internal/core/domain/model/catalog"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/core/domain/services"
	"fablab/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(t *testing.T, price int64) *catalog.Item {
	t.Helper()
	i, err := catalog.NewItem(kernel.NewUUID(), "job", "", price)
	require.NoError(t, err)
	return i
}

func line(t *testing.T, job *catalog.Item, n int) order.LineItem {
	t.Helper()
	q, err := kernel.NewQuantity(n)
	require.NoError(t, err)
	l, err := order.NewLineItem(job.ID(), q)
	require.NoError(t, err)
	return l
}

func TestPriceCalculator_Total(t *testing.T) {
	t.Run("should multiply price by quantity", func(t *testing.T) {
		a, b := item(t, 700), item(t, 300)
		calc := services.NewPriceCalculator([]*catalog.Item{a, b})

		total, err := calc.Total([]order.LineItem{line(t, a, 2), line(t, b, 1)})

		require.NoError(t, err)
		assert.Equal(t, int64(1700), total)
	})

	t.Run("should total zero for no items", func(t *testing.T) {
		total, err := services.NewPriceCalculator(nil).Total(nil)

		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("should use current price of deleted items", func(t *testing.T) {
		a := item(t, 500)
		require.NoError(t, a.SoftDelete())

		total, err := services.NewPriceCalculator([]*catalog.Item{a}).Total([]order.LineItem{line(t, a, 3)})

		require.NoError(t, err)
		assert.Equal(t, int64(1500), total)
	})

	t.Run("should fail for unknown catalog item", func(t *testing.T) {
		a := item(t, 500)

		_, err := services.NewPriceCalculator(nil).Total([]order.LineItem{line(t, a, 1)})

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should report overflow", func(t *testing.T) {
		a, b := item(t, math.MaxInt64-1), item(t, 2)
		calc := services.NewPriceCalculator([]*catalog.Item{a, b})

		_, err := calc.Total([]order.LineItem{line(t, a, 1), line(t, b, 1)})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestPriceCalculator_ReadsPriceAtResolution(t *testing.T) {
	a, b := item(t, 700), item(t, 300)
	printing, err := order.NewDraft(kernel.NewUUID(), kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	q2, _ := kernel.NewQuantity(2)
	q1, _ := kernel.NewQuantity(1)
	_, _ = printing.AddItem(a.ID(), q2)
	_, _ = printing.AddItem(b.ID(), q1)
	require.NoError(t, printing.Form("Ivanov", time.Now()))

	newPrice := int64(800)
	require.NoError(t, a.Update(catalog.Changes{Price: &newPrice}))

	err = printing.Resolve(kernel.NewUUID(), "complete", services.NewPriceCalculator([]*catalog.Item{a, b}), time.Now())

	require.NoError(t, err)
	assert.Equal(t, int64(1900), *printing.TotalPrice())
}
