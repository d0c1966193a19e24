package camera

import (
	"fmt"
	"math"

	"github.com/Afrovis/castle-wars/internal/geom"
	"github.com/Afrovis/castle-wars/internal/vec"
)

// Settings содержит параметры свободной камеры
type Settings struct {
	Speed       float64 // Скорость перемещения (единиц в секунду)
	Sensitivity float64 // Чувствительность мыши (радиан на пиксель)
	PitchLimit  float64 // Ограничение угла тангажа (радиан)
}

// DefaultSettings возвращает параметры камеры по умолчанию
func DefaultSettings() Settings {
	return Settings{
		Speed:       5.0,
		Sensitivity: 0.003,
		PitchLimit:  math.Pi/2 - 0.01,
	}
}

// Pose представляет позу камеры: позицию и ориентацию (Эйлер YXZ).
// Интеграция движения мыши в углы — забота хоста, ядро получает готовую позу.
type Pose struct {
	Position vec.Vec3Float // Позиция в мировых координатах
	Yaw      float64       // Рыскание вокруг оси Y (радианы)
	Pitch    float64       // Тангаж вокруг оси X (радианы)
}

// Forward возвращает единичный вектор взгляда камеры.
// При нулевых углах камера смотрит вдоль -Z.
func (p Pose) Forward() vec.Vec3Float {
	cosPitch := math.Cos(p.Pitch)
	return vec.Vec3Float{
		X: -cosPitch * math.Sin(p.Yaw),
		Y: math.Sin(p.Pitch),
		Z: -cosPitch * math.Cos(p.Yaw),
	}
}

// Right возвращает единичный вектор вправо от камеры
func (p Pose) Right() vec.Vec3Float {
	return vec.Vec3Float{
		X: math.Cos(p.Yaw),
		Z: -math.Sin(p.Yaw),
	}
}

// Up возвращает единичный вектор вверх от камеры
func (p Pose) Up() vec.Vec3Float {
	return p.Right().Cross(p.Forward())
}

// Viewport описывает область вывода для разрешения экранного луча
type Viewport struct {
	Width  float64 // Ширина в пикселях
	Height float64 // Высота в пикселях
	FOVY   float64 // Вертикальный угол обзора (радианы)
}

// ScreenRay строит мировой луч через точку курсора на экране.
// Курсор задаётся в пикселях от левого верхнего угла окна.
// Возвращаемый луч нормализован и готов для передачи в editor.
func ScreenRay(pose Pose, cursor vec.Vec2Float, viewport Viewport) (geom.Ray, error) {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return geom.Ray{}, fmt.Errorf("некорректный viewport: %gx%g", viewport.Width, viewport.Height)
	}
	if viewport.FOVY <= 0 || viewport.FOVY >= math.Pi {
		return geom.Ray{}, fmt.Errorf("некорректный угол обзора: %g", viewport.FOVY)
	}

	// Нормализованные координаты устройства: x вправо, y вверх
	ndcX := 2.0*cursor.X/viewport.Width - 1.0
	ndcY := 1.0 - 2.0*cursor.Y/viewport.Height

	tanHalf := math.Tan(viewport.FOVY / 2.0)
	aspect := viewport.Width / viewport.Height

	// Раскладываем направление по базису камеры
	direction := pose.Forward().
		Add(pose.Right().Mul(ndcX * tanHalf * aspect)).
		Add(pose.Up().Mul(ndcY * tanHalf)).
		Normalized()

	return geom.Ray{Origin: pose.Position, Direction: direction}, nil
}
