package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/Afrovis/castle-wars/internal/logging"
)

// OutcomeKey — ключ gin-контекста, в который обработчики взаимодействий
// кладут исход решения (place/remove/none, hit/miss). Middleware ниже
// включают его в лог запроса и в метрики.
const OutcomeKey = "editor_outcome"

// RequestLogger возвращает middleware, логирующий каждый запрос одной
// строкой завершения: метод, маршрут, статус, длительность, исход
// взаимодействия (если обработчик его задал) и trace-id.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Trace-id берём из OpenTelemetry, если span уже создан
		traceID := uuid.NewString()
		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
		}
		c.Set("trace_id", traceID)

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()
		latency := time.Since(start)

		if outcome := c.GetString(OutcomeKey); outcome != "" {
			logging.Info("[HTTP] %s %s %d %s outcome=%s trace=%s", c.Request.Method, path, status, latency, outcome, traceID)
			return
		}
		logging.Info("[HTTP] %s %s %d %s trace=%s", c.Request.Method, path, status, latency, traceID)
	}
}
