package editor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics инкапсулирует Prometheus-метрики редактора
type Metrics struct {
	picks    *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics создаёт метрики и регистрирует их в глобальном регистре.
// Создавать следует один раз на процесс.
func NewMetrics() *Metrics {
	m := &Metrics{
		picks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "editor",
			Name:      "picks_total",
			Help:      "Число взаимодействий по исходам (place/remove/none).",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "editor",
			Name:      "pick_duration_seconds",
			Help:      "Длительность цикла «луч → решение → применение».",
			Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01},
		}),
	}

	prometheus.MustRegister(m.picks, m.duration)
	return m
}

// observe фиксирует исход и длительность одного взаимодействия.
// Вызов на nil-метриках безопасен: сессии в тестах живут без регистра.
func (m *Metrics) observe(kind DecisionKind, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.picks.WithLabelValues(kind.String()).Inc()
	m.duration.Observe(elapsed.Seconds())
}
