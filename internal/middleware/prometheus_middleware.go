package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics регистрирует Prometheus-метрики HTTP-поверхности редактора:
//
//   - <ns>_http_request_duration_seconds{method,path,status} — histogram
//   - <ns>_interactions_total{path,outcome} — counter взаимодействий
//     по исходам, которые обработчики кладут в OutcomeKey
type HTTPMetrics struct {
	duration     *prometheus.HistogramVec
	interactions *prometheus.CounterVec
}

// NewHTTPMetrics создаёт метрики и регистрирует их в глобальном регистре
func NewHTTPMetrics(namespace string) *HTTPMetrics {
	m := &HTTPMetrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Длительность HTTP-запросов.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "path", "status"}),
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_total",
			Help:      "Число взаимодействий через API по исходам.",
		}, []string{"path", "outcome"}),
	}

	prometheus.MustRegister(m.duration, m.interactions)
	return m
}

// Handler возвращает middleware, наблюдающий каждый запрос
func (m *HTTPMetrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := strconv.Itoa(c.Writer.Status())

		m.duration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())

		if outcome := c.GetString(OutcomeKey); outcome != "" {
			m.interactions.WithLabelValues(path, outcome).Inc()
		}
	}
}

// Expose добавляет маршрут /metrics с promhttp.Handler
func (m *HTTPMetrics) Expose(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
