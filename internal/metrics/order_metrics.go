// Package metrics holds the Prometheus collectors of the fablab service.
package metrics

import (
	"fmt"

	"fablab/internal/core/domain/model/order"
	"fablab/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics implements ports.OrderMetrics and exposes the per-status
// gauge refreshed by the stats job.
type OrderMetrics struct {
	transitions   *prometheus.CounterVec
	cartMutations *prometheus.CounterVec
	printings     *prometheus.GaugeVec
}

// NewOrderMetrics registers collectors with the default registerer.
func NewOrderMetrics() *OrderMetrics {
	return NewOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func NewOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		transitions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "fablab_printing_transitions_total",
			Help: "Committed printing transitions by target status",
		}, []string{"status"}),
		cartMutations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "fablab_cart_mutations_total",
			Help: "Committed draft line item changes by kind",
		}, []string{"kind"}),
		printings: registerGaugeVec(registerer, prometheus.GaugeOpts{
			Name: "fablab_printings",
			Help: "Number of printings per status",
		}, []string{"status"}),
	}
}

func (m *OrderMetrics) TransitionRecorded(to order.Status) {
	m.transitions.WithLabelValues(to.String()).Inc()
}

func (m *OrderMetrics) CartMutated(kind ports.CartMutation) {
	m.cartMutations.WithLabelValues(string(kind)).Inc()
}

// SetPrintingCounts replaces the gauge values; statuses missing from counts
// are reported as zero.
func (m *OrderMetrics) SetPrintingCounts(counts map[order.Status]int) {
	for _, s := range []order.Status{order.Draft, order.Formed, order.Complete, order.Rejected, order.Deleted} {
		m.printings.WithLabelValues(s.String()).Set(float64(counts[s]))
	}
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGaugeVec(registerer prometheus.Registerer, opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	collector := prometheus.NewGaugeVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.GaugeVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge vec %q: %v", opts.Name, err))
	}
	return collector
}
