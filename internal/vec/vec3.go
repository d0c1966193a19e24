package vec

import "math"

// Vec3 представляет ячейку сетки мира с целочисленными координатами.
// Куб ячейки (x, y, z) занимает пространство [x, x+1) × [y, y+1) × [z, z+1).
type Vec3 struct {
	X int
	Y int
	Z int
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Center возвращает центр куба ячейки.
// Центры блоков лежат на полуцелой сетке: (n+0.5, n+0.5, n+0.5).
func (v Vec3) Center() Vec3Float {
	return Vec3Float{
		X: float64(v.X) + 0.5,
		Y: float64(v.Y) + 0.5,
		Z: float64(v.Z) + 0.5,
	}
}

// CellOf возвращает ячейку сетки, содержащую точку p
func CellOf(p Vec3Float) Vec3 {
	return Vec3{
		X: int(math.Floor(p.X)),
		Y: int(math.Floor(p.Y)),
		Z: int(math.Floor(p.Z)),
	}
}
