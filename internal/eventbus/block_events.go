package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Afrovis/castle-wars/internal/world"
)

// BlockPayload — полезная нагрузка события изменения мира
type BlockPayload struct {
	Block string  `json:"block"` // Дескриптор блока
	X     float64 `json:"x"`     // Центр блока
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

// NewBlockEnvelope упаковывает событие мира в конверт шины
func NewBlockEnvelope(source string, ev world.BlockEvent) (*Envelope, error) {
	payload, err := json.Marshal(BlockPayload{
		Block: ev.Block.ID.String(),
		X:     ev.Block.Position.X,
		Y:     ev.Block.Position.Y,
		Z:     ev.Block.Position.Z,
	})
	if err != nil {
		return nil, err
	}

	return &Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    source,
		EventType: ev.Type.String(),
		Version:   1,
		Payload:   payload,
	}, nil
}

// BridgeWorldEvents перекачивает события мира в глобальную шину до
// закрытия канала. Запускается в отдельной горутине хостом после Init.
func BridgeWorldEvents(source string, events <-chan world.BlockEvent) {
	for ev := range events {
		envelope, err := NewBlockEnvelope(source, ev)
		if err != nil {
			continue
		}
		_ = Publish(context.Background(), envelope)
	}
}
