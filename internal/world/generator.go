package world

import (
	"github.com/Afrovis/castle-wars/internal/util"
	"github.com/Afrovis/castle-wars/internal/vec"
)

// Generator создаёт стартовый ландшафт редактора: поле единичных кубов
// вокруг начала координат с высотами по шуму Перлина.
type Generator struct {
	Seed       int64   // Сид для генерации шума
	NoiseScale float64 // Масштаб шума (сглаженность ландшафта)
	MaxHeight  int     // Максимальная высота столбца в блоках

	noise *util.HeightNoise
}

// NewGenerator создаёт генератор ландшафта с указанным сидом
func NewGenerator(seed int64) *Generator {
	return &Generator{
		Seed:       seed,
		NoiseScale: 0.05, // Настройка сглаженности ландшафта
		MaxHeight:  4,
		noise:      util.NewHeightNoise(seed),
	}
}

// Generate заполняет мир столбцами блоков на площадке
// [-halfExtent, halfExtent] по осям x и z. Высота каждого столбца
// детерминирована сидом. Возвращает число созданных блоков.
func (g *Generator) Generate(w *World, halfExtent int) (int, error) {
	placed := 0
	for x := -halfExtent; x <= halfExtent; x++ {
		for z := -halfExtent; z <= halfExtent; z++ {
			noiseX := float64(x) * g.NoiseScale
			noiseZ := float64(z) * g.NoiseScale
			height := 1 + int(g.noise.At(noiseX, noiseZ)*float64(g.MaxHeight-1))

			for y := 0; y < height; y++ {
				cell := vec.Vec3{X: x, Y: y, Z: z}
				if _, err := w.Spawn(cell.Center()); err != nil {
					return placed, err
				}
				placed++
			}
		}
	}
	return placed, nil
}
