package metrics

import (
	"testing"

	"fablab/internal/core/domain/model/order"
	"fablab/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOrderMetrics_Counters(t *testing.T) {
	m := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	m.TransitionRecorded(order.Formed)
	m.TransitionRecorded(order.Formed)
	m.TransitionRecorded(order.Complete)
	m.CartMutated(ports.CartItemAdded)

	assert.InDelta(t, 2, testutil.ToFloat64(m.transitions.WithLabelValues("formed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.transitions.WithLabelValues("complete")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.cartMutations.WithLabelValues("add")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.cartMutations.WithLabelValues("remove")), 0)
}

func TestOrderMetrics_SetPrintingCounts(t *testing.T) {
	m := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	m.SetPrintingCounts(map[order.Status]int{order.Draft: 3, order.Formed: 1})
	assert.InDelta(t, 3, testutil.ToFloat64(m.printings.WithLabelValues("draft")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.printings.WithLabelValues("formed")), 0)

	m.SetPrintingCounts(map[order.Status]int{order.Formed: 2})
	assert.InDelta(t, 0, testutil.ToFloat64(m.printings.WithLabelValues("draft")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.printings.WithLabelValues("formed")), 0)
}

func TestOrderMetrics_ReRegistrationReusesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := NewOrderMetricsWithRegisterer(registry)
	second := NewOrderMetricsWithRegisterer(registry)

	first.TransitionRecorded(order.Rejected)
	assert.InDelta(t, 1, testutil.ToFloat64(second.transitions.WithLabelValues("rejected")), 0)
}
