package metrics

import "github.com/prometheus/client_golang/prometheus"

// CheckoutMetrics counts checkout outcomes.
type CheckoutMetrics struct {
	outcomes *prometheus.CounterVec
	skipped  prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_skipped_items_total",
		Help: "Cart rows skipped at checkout because the product was gone.",
	})
	reg.MustRegister(outcomes, skipped)
	return &CheckoutMetrics{
		outcomes: outcomes,
		skipped:  skipped,
	}
}

// IncOutcome increments the counter for the named outcome.
func (m *CheckoutMetrics) IncOutcome(outcome string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// AddSkippedItems records cart rows dropped during order assembly.
func (m *CheckoutMetrics) AddSkippedItems(n int) {
	if m == nil || m.skipped == nil || n <= 0 {
		return
	}
	m.skipped.Add(float64(n))
}
