package editor

import (
	"errors"

	"github.com/Afrovis/castle-wars/internal/geom"
	"github.com/Afrovis/castle-wars/internal/vec"
	"github.com/Afrovis/castle-wars/internal/world"
)

// Ошибки нарушения предусловий поиска попадания
var (
	ErrZeroDirection  = errors.New("направление луча — нулевой вектор")
	ErrBadMaxDistance = errors.New("максимальная дистанция должна быть положительной")
)

// HitRecord описывает попадание луча в блок.
// Запись существует только в рамках одного запроса и не сохраняется.
type HitRecord struct {
	Distance float64       // Параметр луча t, всегда >= 0
	Normal   vec.Vec3Float // Внешняя нормаль грани: одна компонента ±1, остальные 0
	Block    world.BlockID // Дескриптор блока, в который попал луч
}

// Point возвращает точку попадания на поверхности блока
func (h HitRecord) Point(ray geom.Ray) vec.Vec3Float {
	return ray.At(h.Distance)
}

// FindNearestHit находит ближайший к началу луча блок среди переданных.
// maxDistance задаёт радиус поиска; попадание ровно на границе радиуса
// исключается (сравнение строгое). При точном равенстве дистанций
// выигрывает блок, просмотренный первым.
//
// Линейный обход всех блоков — осознанный контракт: пространственного
// индекса нет, сложность O(n) на взаимодействие. Для миров размера
// редактора этого достаточно; предел масштабирования задокументирован.
func FindNearestHit(ray geom.Ray, blocks []world.Block, maxDistance float64) (HitRecord, bool, error) {
	if ray.Direction.IsZero() {
		return HitRecord{}, false, ErrZeroDirection
	}
	if maxDistance <= 0 {
		return HitRecord{}, false, ErrBadMaxDistance
	}

	closest := maxDistance
	var record HitRecord
	found := false

	for _, b := range blocks {
		box := geom.UnitCube(b.Position)
		t, normal, ok := geom.IntersectRayBox(ray, box)
		if !ok {
			continue
		}
		if t < closest {
			closest = t
			record = HitRecord{Distance: t, Normal: normal, Block: b.ID}
			found = true
		}
	}

	return record, found, nil
}
