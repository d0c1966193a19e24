package eventbus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Afrovis/castle-wars/internal/logging"
)

// MetricsExporter инкапсулирует Prometheus-метрики шины и периодически
// обновляет их. Экспортер не делает предположений о конкретной реализации
// шины — опирается исключительно на интерфейс EventBus.
type MetricsExporter struct {
	bus  EventBus
	quit chan struct{}
	done chan struct{}
	// Prometheus metrics
	published prometheus.Counter
	consumed  prometheus.Counter
	dropped   prometheus.Counter
	inflight  prometheus.Gauge
}

// NewMetricsExporter создаёт экспортер, но не запускает HTTP-сервер.
func NewMetricsExporter(bus EventBus) *MetricsExporter {
	me := &MetricsExporter{
		bus:  bus,
		quit: make(chan struct{}),
		done: make(chan struct{}),
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "editor_bus",
			Name:      "messages_published_total",
			Help:      "Общее число опубликованных событий.",
		}),
		consumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "editor_bus",
			Name:      "messages_consumed_total",
			Help:      "Общее число доставленных событий подписчикам.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "editor_bus",
			Name:      "messages_dropped_total",
			Help:      "Событий, отброшенных при переполнении буфера.",
		}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "editor_bus",
			Name:      "messages_inflight",
			Help:      "Количество событий в очереди доставки.",
		}),
	}

	// Регистрируем метрики в глобальном регистре Prometheus.
	prometheus.MustRegister(me.published, me.consumed, me.dropped, me.inflight)
	return me
}

// Start запускает цикл обновления метрик и HTTP-эндпоинт /metrics.
// addr вида ":2112"; пустой addr — только цикл обновления.
func (me *MetricsExporter) Start(addr string) {
	go me.updateLoop()

	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logging.Error("metrics endpoint: %v", err)
		}
	}()
	logging.Info("📊 Prometheus метрики доступны на %s/metrics", addr)
}

// Stop останавливает цикл обновления.
func (me *MetricsExporter) Stop() {
	close(me.quit)
	<-me.done
}

// updateLoop переносит счётчики шины в Prometheus-метрики.
// Счётчики шины монотонные, поэтому добавляется только дельта.
func (me *MetricsExporter) updateLoop() {
	defer close(me.done)

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	var prev Stats
	for {
		select {
		case <-me.quit:
			return
		case <-ticker.C:
			stats := me.bus.Metrics()
			me.published.Add(float64(stats.Published - prev.Published))
			me.consumed.Add(float64(stats.Consumed - prev.Consumed))
			me.dropped.Add(float64(stats.Dropped - prev.Dropped))
			me.inflight.Set(float64(stats.InFlight))
			prev = stats
		}
	}
}
