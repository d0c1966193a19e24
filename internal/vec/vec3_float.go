package vec

import "math"

// Vec3Float представляет трехмерный вектор с плавающими координатами.
// Используется для позиций, направлений и нормалей.
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// Splat создаёт вектор с одинаковым значением по всем осям
func Splat(v float64) Vec3Float {
	return Vec3Float{X: v, Y: v, Z: v}
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub вычитает вектор
func (v Vec3Float) Sub(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Mul умножает вектор на скаляр
func (v Vec3Float) Mul(scalar float64) Vec3Float {
	return Vec3Float{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// Abs возвращает вектор из модулей координат
func (v Vec3Float) Abs() Vec3Float {
	return Vec3Float{X: math.Abs(v.X), Y: math.Abs(v.Y), Z: math.Abs(v.Z)}
}

// Length возвращает длину вектора
func (v Vec3Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsZero проверяет, является ли вектор нулевым
func (v Vec3Float) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Normalized возвращает нормализованный вектор.
// Нулевой вектор возвращается как есть — вызывающий обязан проверить IsZero.
func (v Vec3Float) Normalized() Vec3Float {
	length := v.Length()
	if length == 0 {
		return Vec3Float{}
	}
	return Vec3Float{X: v.X / length, Y: v.Y / length, Z: v.Z / length}
}

// Cross возвращает векторное произведение v × other
func (v Vec3Float) Cross(other Vec3Float) Vec3Float {
	return Vec3Float{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Dot возвращает скалярное произведение
func (v Vec3Float) Dot(other Vec3Float) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec3Float) DistanceTo(other Vec3Float) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
