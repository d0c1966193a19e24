package editor

import (
	"math"

	"github.com/Afrovis/castle-wars/internal/vec"
)

// PlacementPosition вычисляет центр нового блока по точке попадания
// и нормали грани. Используется округление вверх («ceiling-snap»):
// координата с нулевой дробной частью остаётся как есть, остальные
// округляются до потолка, после чего вычитается 0.5.
//
// Округляется не сама точка попадания, а опорная точка на половину
// единицы вглубь задетого блока: координата на плоскости грани целая
// и неустойчива к погрешности пересечения, а опорная точка лежит
// строго внутри куба и однозначно даёт его центр на полуцелой сетке.
// Сдвиг на нормаль затем даёт соседнюю ячейку со стороны задетой грани.
func PlacementPosition(hitPoint, normal vec.Vec3Float) vec.Vec3Float {
	ref := hitPoint.Sub(normal.Mul(0.5))
	base := vec.Vec3Float{
		X: smartRound(ref.X) - 0.5,
		Y: smartRound(ref.Y) - 0.5,
		Z: smartRound(ref.Z) - 0.5,
	}
	return base.Add(normal)
}

// smartRound оставляет целые значения без изменений, остальные
// округляет вверх
func smartRound(v float64) float64 {
	if v == math.Trunc(v) {
		return v
	}
	return math.Ceil(v)
}
