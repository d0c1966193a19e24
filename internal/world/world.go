package world

import (
	"fmt"
	"sync"

	"github.com/Afrovis/castle-wars/internal/vec"
)

// World хранит плоское множество блоков редактора.
// Блоки живут в арене со свободным списком: дескрипторы остаются
// компактными, а поколение слота делает устаревшие дескрипторы
// безвредными. Пространственного индекса нет намеренно — поиск
// попадания луча обходит все блоки линейно (см. editor.FindNearestHit).
type World struct {
	mu       sync.RWMutex
	slots    []slot                // Арена блоков
	free     []uint32              // Индексы свободных слотов
	occupied map[vec.Vec3]BlockID  // Занятые ячейки сетки
	events   chan BlockEvent       // События изменений (может быть nil)
	count    int                   // Число живых блоков
}

type slot struct {
	block Block
	gen   uint32 // Текущее поколение слота
	live  bool
}

// New создаёт пустой мир
func New() *World {
	return &World{
		occupied: make(map[vec.Vec3]BlockID),
	}
}

// NewWithEvents создаёт мир с каналом событий указанной ёмкости.
// События отправляются неблокирующе: при переполнении буфера событие
// теряется, состояние мира при этом остаётся корректным.
func NewWithEvents(capacity int) *World {
	w := New()
	w.events = make(chan BlockEvent, capacity)
	return w
}

// Events возвращает канал событий мира (nil, если мир создан без него)
func (w *World) Events() <-chan BlockEvent {
	return w.events
}

// Spawn добавляет блок с центром в указанной точке.
// Возвращает ошибку, если ячейка сетки уже занята.
func (w *World) Spawn(position vec.Vec3Float) (BlockID, error) {
	cell := vec.CellOf(position)

	w.mu.Lock()
	if prev, busy := w.occupied[cell]; busy {
		w.mu.Unlock()
		return BlockID{}, fmt.Errorf("ячейка %v уже занята блоком %s", cell, prev)
	}

	var index uint32
	if n := len(w.free); n > 0 {
		index = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		w.slots = append(w.slots, slot{})
		index = uint32(len(w.slots) - 1)
	}

	s := &w.slots[index]
	s.gen++
	s.live = true
	id := BlockID{Index: index, Gen: s.gen}
	s.block = Block{ID: id, Position: position}

	w.occupied[cell] = id
	w.count++
	block := s.block
	w.mu.Unlock()

	w.emit(BlockEvent{Type: EventTypeBlockPlaced, Block: block})
	return id, nil
}

// Despawn удаляет блок по дескриптору.
// Устаревший или невалидный дескриптор — не ошибка, возвращается false.
func (w *World) Despawn(id BlockID) bool {
	if !id.IsValid() {
		return false
	}

	w.mu.Lock()
	if int(id.Index) >= len(w.slots) {
		w.mu.Unlock()
		return false
	}
	s := &w.slots[id.Index]
	if !s.live || s.gen != id.Gen {
		w.mu.Unlock()
		return false
	}

	block := s.block
	s.live = false
	delete(w.occupied, block.Cell())
	w.free = append(w.free, id.Index)
	w.count--
	w.mu.Unlock()

	w.emit(BlockEvent{Type: EventTypeBlockRemoved, Block: block})
	return true
}

// Get возвращает блок по дескриптору
func (w *World) Get(id BlockID) (Block, bool) {
	if !id.IsValid() {
		return Block{}, false
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	if int(id.Index) >= len(w.slots) {
		return Block{}, false
	}
	s := w.slots[id.Index]
	if !s.live || s.gen != id.Gen {
		return Block{}, false
	}
	return s.block, true
}

// BlockAt возвращает блок, занимающий указанную ячейку сетки
func (w *World) BlockAt(cell vec.Vec3) (Block, bool) {
	w.mu.RLock()
	id, busy := w.occupied[cell]
	w.mu.RUnlock()
	if !busy {
		return Block{}, false
	}
	return w.Get(id)
}

// Snapshot возвращает копию всех живых блоков.
// Порядок — порядок слотов арены; он детерминирован и определяет,
// какой из блоков выигрывает при точном равенстве дистанций попадания
// (первый просмотренный).
func (w *World) Snapshot() []Block {
	w.mu.RLock()
	defer w.mu.RUnlock()

	blocks := make([]Block, 0, w.count)
	for _, s := range w.slots {
		if s.live {
			blocks = append(blocks, s.block)
		}
	}
	return blocks
}

// Count возвращает число живых блоков
func (w *World) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.count
}

// emit отправляет событие без блокировки
func (w *World) emit(ev BlockEvent) {
	if w.events == nil {
		return
	}
	select {
	case w.events <- ev:
	default:
		// Буфер переполнен — событие теряется
	}
}
