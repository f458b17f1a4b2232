package metrics

import (
	"errors"

	"github.com/TSaugineta225/vendendo-facil/src/pos/domain/entity"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resultados posibles de un envío de venta
const (
	OutcomeCommitted          = "committed"
	OutcomeValidationFailed   = "validation_failed"
	OutcomeInsufficientStock  = "insufficient_stock"
	OutcomePersistenceFailure = "persistence_failure"
	OutcomePartialCommit      = "partial_commit"
)

// SaleMetrics agrupa las métricas del PDV expuestas en /metrics
type SaleMetrics struct {
	submissions *prometheus.CounterVec
	revenue     *prometheus.CounterVec
	duration    prometheus.Histogram
	openCarts   prometheus.Gauge
}

// NewSaleMetrics registra las métricas en el registerer dado (nil = registry por defecto)
func NewSaleMetrics(reg prometheus.Registerer) *SaleMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &SaleMetrics{
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "sale_submissions_total",
			Help:      "Sale submissions by outcome.",
		}, []string{"outcome"}),
		revenue: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "sale_revenue_total",
			Help:      "Grand total of committed sales by payment method.",
		}, []string{"payment_method"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pos",
			Name:      "sale_submission_duration_seconds",
			Help:      "Time spent validating and persisting a sale.",
			Buckets:   prometheus.DefBuckets,
		}),
		openCarts: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "pos",
			Name:      "open_cart_sessions",
			Help:      "Cart sessions currently held in memory.",
		}),
	}
}

// Outcome clasifica el error de un envío
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeCommitted
	case errors.Is(err, entity.ErrPartialCommit):
		return OutcomePartialCommit
	case errors.Is(err, entity.ErrPersistenceFailure):
		return OutcomePersistenceFailure
	case errors.Is(err, entity.ErrInsufficientStock):
		return OutcomeInsufficientStock
	default:
		return OutcomeValidationFailed
	}
}

// ObserveSubmission registra el resultado y la duración de un envío.
// Métodos nil-safe: un *SaleMetrics nil no registra nada.
func (m *SaleMetrics) ObserveSubmission(sale *entity.Sale, err error, seconds float64) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(Outcome(err)).Inc()
	m.duration.Observe(seconds)
	if err == nil && sale != nil {
		total, _ := sale.TotalAmount.Float64()
		m.revenue.WithLabelValues(string(sale.PaymentMethod)).Add(total)
	}
}

func (m *SaleMetrics) SetOpenCarts(n int) {
	if m == nil {
		return
	}
	m.openCarts.Set(float64(n))
}
