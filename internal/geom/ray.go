package geom

import (
	"github.com/Afrovis/castle-wars/internal/vec"
)

// Ray представляет луч в мировом пространстве
type Ray struct {
	Origin    vec.Vec3Float // Точка испускания луча
	Direction vec.Vec3Float // Направление (нормализуется вызывающим)
}

// At возвращает точку на луче с параметром t
func (r Ray) At(t float64) vec.Vec3Float {
	return r.Origin.Add(r.Direction.Mul(t))
}
