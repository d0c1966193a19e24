package util

import (
	"github.com/aquilax/go-perlin"
)

// HeightNoise оборачивает шум Перлина для генерации карты высот
type HeightNoise struct {
	noise *perlin.Perlin
}

// NewHeightNoise создаёт генератор шума с указанным сидом
func NewHeightNoise(seed int64) *HeightNoise {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return &HeightNoise{
		noise: perlin.NewPerlin(alpha, beta, n, seed),
	}
}

// At возвращает значение шума для указанных координат в диапазоне [0, 1]
func (h *HeightNoise) At(x, y float64) float64 {
	// Noise2D возвращает значение от -1 до 1
	return (h.noise.Noise2D(x, y) + 1.0) / 2.0
}
