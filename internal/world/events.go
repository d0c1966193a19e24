package world

// EventType определяет тип события мира
type EventType uint8

const (
	EventTypeBlockPlaced  EventType = iota // Установка блока
	EventTypeBlockRemoved                  // Удаление блока
)

// String возвращает строковое имя типа события
func (t EventType) String() string {
	switch t {
	case EventTypeBlockPlaced:
		return "block_placed"
	case EventTypeBlockRemoved:
		return "block_removed"
	default:
		return "unknown"
	}
}

// BlockEvent представляет событие изменения мира
type BlockEvent struct {
	Type  EventType // Тип события
	Block Block     // Затронутый блок (для удаления — последнее состояние)
}
