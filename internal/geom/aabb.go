package geom

import (
	"github.com/Afrovis/castle-wars/internal/vec"
)

// AABB представляет выровненный по осям параллелепипед.
// Инвариант: Min.X <= Max.X, Min.Y <= Max.Y, Min.Z <= Max.Z.
type AABB struct {
	Min vec.Vec3Float
	Max vec.Vec3Float
}

// AABBFromCenter создаёт AABB из центра и половинных размеров
func AABBFromCenter(center, half vec.Vec3Float) AABB {
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// UnitCube возвращает AABB единичного куба с указанным центром
func UnitCube(center vec.Vec3Float) AABB {
	return AABBFromCenter(center, vec.Splat(0.5))
}

// Center возвращает центр параллелепипеда
func (b AABB) Center() vec.Vec3Float {
	return b.Min.Add(b.Max).Mul(0.5)
}

// HalfSize возвращает половинные размеры по осям
func (b AABB) HalfSize() vec.Vec3Float {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// Contains проверяет, лежит ли точка строго внутри параллелепипеда
func (b AABB) Contains(p vec.Vec3Float) bool {
	return p.X > b.Min.X && p.X < b.Max.X &&
		p.Y > b.Min.Y && p.Y < b.Max.Y &&
		p.Z > b.Min.Z && p.Z < b.Max.Z
}
