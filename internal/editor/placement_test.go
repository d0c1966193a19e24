package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Afrovis/castle-wars/internal/geom"
	"github.com/Afrovis/castle-wars/internal/vec"
	"github.com/Afrovis/castle-wars/internal/world"
)

func TestSmartRound(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1, 1},
		{-2, -2},
		{0.5, 1},
		{0.1, 1},
		{-0.5, 0},
		{-1.3, -1},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, smartRound(c.in), "smartRound(%g)", c.in)
	}
}

func TestPlacementPosition_TopFace(t *testing.T) {
	// Попадание в верхнюю грань блока с центром (0.5, 0.5, 0.5):
	// новый блок ровно на единицу выше
	hitPoint := vec.Vec3Float{X: 0.5, Y: 1.0, Z: 0.5}
	normal := vec.Vec3Float{Y: 1}

	got := PlacementPosition(hitPoint, normal)
	assert.Equal(t, vec.Vec3Float{X: 0.5, Y: 1.5, Z: 0.5}, got)
}

func TestPlacementPosition_SideFace(t *testing.T) {
	// Попадание в грань +X не в центре грани: поперечные координаты
	// всё равно схлопываются в центр задетого куба
	hitPoint := vec.Vec3Float{X: 1.0, Y: 0.73, Z: 0.21}
	normal := vec.Vec3Float{X: 1}

	got := PlacementPosition(hitPoint, normal)
	assert.Equal(t, vec.Vec3Float{X: 1.5, Y: 0.5, Z: 0.5}, got)
}

func TestPlacementPosition_NegativeCoords(t *testing.T) {
	// Куб в ячейке (-1, 0, -1), центр (-0.5, 0.5, -0.5), грань -X
	hitPoint := vec.Vec3Float{X: -1.0, Y: 0.4, Z: -0.6}
	normal := vec.Vec3Float{X: -1}

	got := PlacementPosition(hitPoint, normal)
	assert.Equal(t, vec.Vec3Float{X: -1.5, Y: 0.5, Z: -0.5}, got)
}

func TestResolve_PlaceAboveTopFace(t *testing.T) {
	// Сценарий: луч сверху вниз в блок ячейки (0,0,0) —
	// установка даёт блок на единицу выше верхней грани
	cell := vec.Vec3{X: 0, Y: 0, Z: 0}
	blocks := []world.Block{{
		ID:       world.BlockID{Index: 0, Gen: 1},
		Position: cell.Center(),
	}}
	ray := geom.Ray{
		Origin:    vec.Vec3Float{X: 0.5, Y: 5, Z: 0.5},
		Direction: vec.Vec3Float{Y: -1},
	}

	decision, err := Resolve(ray, blocks, 10, ActionPlace)
	assert.NoError(t, err)
	assert.Equal(t, DecisionPlace, decision.Kind)
	assert.Equal(t, vec.Vec3Float{X: 0.5, Y: 1.5, Z: 0.5}, decision.Position)
	assert.Equal(t, vec.Vec3{X: 0, Y: 1, Z: 0}, vec.CellOf(decision.Position), "Новый блок в ячейке над задетой")
}

func TestResolve_RemoveReturnsTarget(t *testing.T) {
	id := world.BlockID{Index: 3, Gen: 2}
	blocks := []world.Block{{ID: id, Position: vec.Vec3Float{X: 0.5, Y: 0.5, Z: 0.5}}}
	ray := geom.Ray{
		Origin:    vec.Vec3Float{X: 0.5, Y: 0.5, Z: 5},
		Direction: vec.Vec3Float{Z: -1},
	}

	decision, err := Resolve(ray, blocks, 10, ActionRemove)
	assert.NoError(t, err)
	assert.Equal(t, DecisionRemove, decision.Kind)
	assert.Equal(t, id, decision.Target)
}

func TestResolve_MissIsNone(t *testing.T) {
	blocks := []world.Block{{ID: world.BlockID{Index: 0, Gen: 1}, Position: vec.Vec3Float{X: 0.5, Y: 0.5, Z: 0.5}}}
	ray := geom.Ray{
		Origin:    vec.Vec3Float{X: 50, Y: 50, Z: 5},
		Direction: vec.Vec3Float{Z: -1},
	}

	decision, err := Resolve(ray, blocks, 10, ActionPlace)
	assert.NoError(t, err)
	assert.Equal(t, DecisionNone, decision.Kind, "Промах — нормальный исход без действия")
}

func TestResolve_RoundTripPlacement(t *testing.T) {
	// Установленный блок делит грань с задетым: повторный бросок того же
	// луча попадает в новый блок ровно на единицу ближе. Блок никогда не
	// возникает в произвольной точке между камерой и структурой.
	original := world.Block{
		ID:       world.BlockID{Index: 0, Gen: 1},
		Position: vec.Vec3Float{X: 0.5, Y: 0.5, Z: 0.5},
	}
	ray := geom.Ray{
		Origin:    vec.Vec3Float{X: 0.5, Y: 0.5, Z: 6.5},
		Direction: vec.Vec3Float{Z: -1},
	}

	first, err := Resolve(ray, []world.Block{original}, 10, ActionPlace)
	assert.NoError(t, err)
	assert.Equal(t, DecisionPlace, first.Kind)

	placed := world.Block{
		ID:       world.BlockID{Index: 1, Gen: 1},
		Position: first.Position,
	}

	second, err := Resolve(ray, []world.Block{original, placed}, 10, ActionPlace)
	assert.NoError(t, err)
	assert.Equal(t, DecisionPlace, second.Kind)
	assert.Equal(t, placed.ID, second.Hit.Block, "Повторный бросок задевает установленный блок")
	assert.InDelta(t, first.Hit.Distance-1.0, second.Hit.Distance, 1e-9,
		"Новый блок делит грань с задетым: дистанция меньше ровно на единицу")
}

func TestResolve_PlacementNeverSwallowsOrigin(t *testing.T) {
	// Начало луча в одной единице от грани: вычисленная ячейка содержит
	// начало луча, и при повторном броске этот блок отбрасывается
	// (вход позади), исходный блок остаётся задетым
	original := world.Block{
		ID:       world.BlockID{Index: 0, Gen: 1},
		Position: vec.Vec3Float{X: 0.5, Y: 0.5, Z: 0.5},
	}
	ray := geom.Ray{
		Origin:    vec.Vec3Float{X: 0.5, Y: 0.5, Z: 1.6},
		Direction: vec.Vec3Float{Z: -1},
	}

	first, err := Resolve(ray, []world.Block{original}, 10, ActionPlace)
	assert.NoError(t, err)
	assert.Equal(t, DecisionPlace, first.Kind)
	assert.Equal(t, vec.Vec3Float{X: 0.5, Y: 0.5, Z: 1.5}, first.Position)

	placed := world.Block{ID: world.BlockID{Index: 1, Gen: 1}, Position: first.Position}

	second, err := Resolve(ray, []world.Block{original, placed}, 10, ActionPlace)
	assert.NoError(t, err)
	assert.Equal(t, original.ID, second.Hit.Block,
		"Блок, содержащий начало луча, не участвует в попадании")
}
