package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout outcomes.
type CheckoutMetrics struct {
	duration    *prometheus.HistogramVec
	completed   *prometheus.CounterVec
	failed      *prometheus.CounterVec
	idConflicts prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pos_checkout_duration_seconds",
		Help:    "Duration of checkout attempts in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	completed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_checkout_completed_total",
		Help: "Sales recorded through checkout.",
	}, []string{"payment_method"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_checkout_failed_total",
		Help: "Checkouts aborted before the sale was recorded.",
	}, []string{"reason"})
	idConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_checkout_order_id_conflicts_total",
		Help: "Order ids rejected as already taken and regenerated.",
	})
	reg.MustRegister(duration, completed, failed, idConflicts)
	return &CheckoutMetrics{
		duration:    duration,
		completed:   completed,
		failed:      failed,
		idConflicts: idConflicts,
	}
}

// ObserveDuration records how long a checkout took, labeled by outcome.
func (c *CheckoutMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncCompleted counts a recorded sale.
func (c *CheckoutMetrics) IncCompleted(paymentMethod string) {
	if c == nil || c.completed == nil {
		return
	}
	c.completed.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
}

// IncFailed counts an aborted checkout.
func (c *CheckoutMetrics) IncFailed(reason string) {
	if c == nil || c.failed == nil {
		return
	}
	c.failed.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncIDConflict counts an order id collision.
func (c *CheckoutMetrics) IncIDConflict() {
	if c == nil || c.idConflicts == nil {
		return
	}
	c.idConflicts.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
