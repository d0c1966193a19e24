package editor

import (
	"github.com/Afrovis/castle-wars/internal/geom"
	"github.com/Afrovis/castle-wars/internal/vec"
	"github.com/Afrovis/castle-wars/internal/world"
)

// Action определяет действие пользователя на фронте нажатия.
// Каждый вызов Resolve соответствует ровно одному фронту — удержание
// кнопки не порождает повторных действий.
type Action uint8

const (
	ActionPlace  Action = iota // Основное действие: установить блок
	ActionRemove               // Вторичное действие: удалить блок
)

// DecisionKind определяет исход разрешения взаимодействия
type DecisionKind uint8

const (
	DecisionNone   DecisionKind = iota // Попадания нет, мир не меняется
	DecisionPlace                      // Установить блок в Position
	DecisionRemove                     // Удалить блок Target
)

// String возвращает строковое имя исхода
func (k DecisionKind) String() string {
	switch k {
	case DecisionPlace:
		return "place"
	case DecisionRemove:
		return "remove"
	default:
		return "none"
	}
}

// Decision — результат разрешения одного взаимодействия.
// Ядро не изменяет мир само: решение применяет вызывающая сторона.
type Decision struct {
	Kind     DecisionKind  // Исход
	Position vec.Vec3Float // Центр нового блока (для DecisionPlace)
	Target   world.BlockID // Блок для удаления (для DecisionRemove)
	Hit      HitRecord     // Попадание, породившее решение
}

// Resolve выполняет один цикл «луч → попадание → решение» над
// снимком блоков. Отсутствие попадания — не ошибка, возвращается
// DecisionNone. Ошибки возможны только при нарушении предусловий
// (нулевое направление, неположительная дистанция).
func Resolve(ray geom.Ray, blocks []world.Block, maxDistance float64, action Action) (Decision, error) {
	hit, found, err := FindNearestHit(ray, blocks, maxDistance)
	if err != nil {
		return Decision{}, err
	}
	if !found {
		return Decision{Kind: DecisionNone}, nil
	}

	switch action {
	case ActionRemove:
		return Decision{Kind: DecisionRemove, Target: hit.Block, Hit: hit}, nil
	default:
		position := PlacementPosition(hit.Point(ray), hit.Normal)
		return Decision{Kind: DecisionPlace, Position: position, Hit: hit}, nil
	}
}
