package eventbus

import "context"

// Глобальная шина процесса. Устанавливается один раз при старте;
// до Init публикация — тихий no-op: мир умеет жить без шины,
// событие просто некому доставлять.
var globalBus EventBus

// Init устанавливает глобальную шину процесса
func Init(bus EventBus) { globalBus = bus }

// Publish отправляет событие в глобальную шину
func Publish(ctx context.Context, ev *Envelope) error {
	if globalBus == nil {
		return nil
	}
	return globalBus.Publish(ctx, ev)
}

// BusStats возвращает метрики глобальной шины (нулевые до Init)
func BusStats() Stats {
	if globalBus == nil {
		return Stats{}
	}
	return globalBus.Metrics()
}
