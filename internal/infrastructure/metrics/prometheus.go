// Package metrics exposes warehouse movement metrics to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/domain"
)

// Prometheus metric names.
const (
	MetricMovementsTotal          = "warehouse_movements_total"
	MetricMovementDurationSeconds = "warehouse_movement_duration_seconds"
	MetricCapacityBooks           = "warehouse_capacity_books"
	MetricLoadBooks               = "warehouse_load_books"
)

// LoadFunc reports total capacity and current load in books.
type LoadFunc func() (capacity, load int)

// Recorder collects movement metrics into its own registry.
type Recorder struct {
	registry         *prometheus.Registry
	movementsTotal   *prometheus.CounterVec
	movementDuration *prometheus.HistogramVec
}

func NewRecorder(load LoadFunc) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		movementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricMovementsTotal,
				Help: "Stock movements that reached a terminal status.",
			},
			[]string{"type", "status"},
		),
		movementDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricMovementDurationSeconds,
				Help:    "Time spent executing or cancelling a stock movement.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"type"},
		),
	}
	r.registry.MustRegister(r.movementsTotal, r.movementDuration)

	if load != nil {
		r.registry.MustRegister(
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Name: MetricCapacityBooks,
				Help: "Total capacity of all storage locations, in books.",
			}, func() float64 {
				capacity, _ := load()
				return float64(capacity)
			}),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Name: MetricLoadBooks,
				Help: "Books currently stored in the warehouse.",
			}, func() float64 {
				_, current := load()
				return float64(current)
			}),
		)
	}
	return r
}

func (r *Recorder) ObserveMovement(t domain.MovementType, s domain.MovementStatus, elapsed time.Duration) {
	r.movementsTotal.WithLabelValues(string(t), string(s)).Inc()
	r.movementDuration.WithLabelValues(string(t)).Observe(elapsed.Seconds())
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
