package eventbus

import (
	"context"
	"encoding/json"

	"github.com/Afrovis/castle-wars/internal/logging"
	"github.com/Afrovis/castle-wars/internal/world"
)

// StartLoggingListener подписывается на события изменения мира и пишет их
// в лог в человекочитаемом виде. Функция неблокирующая.
func StartLoggingListener(bus EventBus) error {
	filter := Filter{Types: []string{
		world.EventTypeBlockPlaced.String(),
		world.EventTypeBlockRemoved.String(),
	}}

	_, err := bus.Subscribe(context.Background(), filter, func(ctx context.Context, ev *Envelope) {
		var payload BlockPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			logging.Warn("[EventBus] %s: нечитаемая нагрузка события %s: %v", ev.EventType, ev.ID, err)
			return
		}

		verb := "установлен"
		if ev.EventType == world.EventTypeBlockRemoved.String() {
			verb = "удалён"
		}
		logging.Debug("[EventBus] %s %s в (%.1f, %.1f, %.1f) src=%s", payload.Block, verb, payload.X, payload.Y, payload.Z, ev.Source)
	})
	if err != nil {
		return err
	}

	logging.Info("🪵 LoggingListener: подписка на события мира активирована")
	return nil
}
