package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records cart calculation activity.
type PricingMetrics struct {
	calculations *prometheus.CounterVec
	coupons      *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	calculations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_calculations_total",
		Help: "Cart totals computed, by source.",
	}, []string{"source"})
	coupons := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_coupon_outcomes_total",
		Help: "Submitted coupon codes by outcome and rejection reason.",
	}, []string{"result", "reason"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_calculation_duration_seconds",
		Help:    "Time spent computing cart totals, including catalog lookups.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	reg.MustRegister(calculations, coupons, duration)
	return &PricingMetrics{
		calculations: calculations,
		coupons:      coupons,
		duration:     duration,
	}
}

// ObserveCalculation counts one calculation and its duration.
func (m *PricingMetrics) ObserveCalculation(source string, duration time.Duration) {
	if m == nil || m.calculations == nil {
		return
	}
	source = normalizeLabel(source)
	m.calculations.WithLabelValues(source).Inc()
	m.duration.WithLabelValues(source).Observe(duration.Seconds())
}

// IncCouponApplied counts a coupon that contributed a discount.
func (m *PricingMetrics) IncCouponApplied() {
	if m == nil || m.coupons == nil {
		return
	}
	m.coupons.WithLabelValues("applied", "none").Inc()
}

// IncCouponRejected counts a coupon that was dropped for reason.
func (m *PricingMetrics) IncCouponRejected(reason string) {
	if m == nil || m.coupons == nil {
		return
	}
	m.coupons.WithLabelValues("rejected", normalizeLabel(reason)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
