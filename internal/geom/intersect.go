package geom

import (
	"math"

	"github.com/Afrovis/castle-wars/internal/vec"
)

// faceEpsilon определяет допуск при определении грани попадания
const faceEpsilon = 1e-4

// IntersectRayBox вычисляет ближайшее пересечение луча с AABB методом слабов.
// Возвращает параметр луча t (расстояние входа) и внешнюю нормаль грани.
// ok == false, если пересечения нет или параллелепипед целиком позади луча.
//
// Деление на нулевую компоненту направления даёт ±Inf по правилам IEEE-754,
// последующий swap упорядочивает пару корректно — отдельная ветка не нужна.
func IntersectRayBox(ray Ray, box AABB) (t float64, normal vec.Vec3Float, ok bool) {
	tMin := (box.Min.X - ray.Origin.X) / ray.Direction.X
	tMax := (box.Max.X - ray.Origin.X) / ray.Direction.X
	if tMin > tMax {
		tMin, tMax = tMax, tMin
	}

	tyMin := (box.Min.Y - ray.Origin.Y) / ray.Direction.Y
	tyMax := (box.Max.Y - ray.Origin.Y) / ray.Direction.Y
	if tyMin > tyMax {
		tyMin, tyMax = tyMax, tyMin
	}

	if tMin > tyMax || tyMin > tMax {
		return 0, vec.Vec3Float{}, false
	}
	if tyMin > tMin {
		tMin = tyMin
	}
	if tyMax < tMax {
		tMax = tyMax
	}

	tzMin := (box.Min.Z - ray.Origin.Z) / ray.Direction.Z
	tzMax := (box.Max.Z - ray.Origin.Z) / ray.Direction.Z
	if tzMin > tzMax {
		tzMin, tzMax = tzMax, tzMin
	}

	if tMin > tzMax || tzMin > tMax {
		return 0, vec.Vec3Float{}, false
	}
	if tzMin > tMin {
		tMin = tzMin
	}
	if tzMax < tMax {
		tMax = tzMax
	}

	// Параллелепипед целиком позади начала луча
	if tMin < 0 {
		return 0, vec.Vec3Float{}, false
	}

	hit := ray.At(tMin)
	center := box.Center()
	half := box.HalfSize()
	relative := hit.Sub(center).Abs()

	// Грань определяется осью, на которой точка попадания лежит на границе.
	// Проверка в порядке x, y, z — при попадании в ребро или угол
	// приоритет у оси x, затем y.
	switch {
	case math.Abs(relative.X-half.X) < faceEpsilon:
		if hit.X > center.X {
			normal = vec.Vec3Float{X: 1}
		} else {
			normal = vec.Vec3Float{X: -1}
		}
	case math.Abs(relative.Y-half.Y) < faceEpsilon:
		if hit.Y > center.Y {
			normal = vec.Vec3Float{Y: 1}
		} else {
			normal = vec.Vec3Float{Y: -1}
		}
	default:
		if hit.Z > center.Z {
			normal = vec.Vec3Float{Z: 1}
		} else {
			normal = vec.Vec3Float{Z: -1}
		}
	}

	return tMin, normal, true
}
