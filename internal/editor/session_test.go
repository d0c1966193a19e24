package editor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Afrovis/castle-wars/internal/camera"
	"github.com/Afrovis/castle-wars/internal/vec"
	"github.com/Afrovis/castle-wars/internal/world"
)

// testViewport — окно 800x600 с вертикальным углом обзора 60°
func testViewport() camera.Viewport {
	return camera.Viewport{Width: 800, Height: 600, FOVY: math.Pi / 3}
}

// centerCursor — курсор в центре окна: луч совпадает с направлением взгляда
func centerCursor() vec.Vec2Float {
	return vec.Vec2Float{X: 400, Y: 300}
}

// lookDown — поза над ячейкой (0,0,0), взгляд вертикально вниз
func lookDown() camera.Pose {
	return camera.Pose{
		Position: vec.Vec3Float{X: 0.5, Y: 5, Z: 0.5},
		Pitch:    -math.Pi / 2,
	}
}

func TestSession_ClickPlacesBlock(t *testing.T) {
	w := world.New()
	_, err := w.Spawn(vec.Vec3{X: 0, Y: 0, Z: 0}.Center())
	require.NoError(t, err)

	session := NewSession(w, 10, nil)

	decision, err := session.Click(lookDown(), centerCursor(), testViewport(), ActionPlace)
	require.NoError(t, err)

	assert.Equal(t, DecisionPlace, decision.Kind)
	assert.Equal(t, vec.Vec3Float{X: 0.5, Y: 1.5, Z: 0.5}, decision.Position, "Блок ставится над верхней гранью")
	assert.Equal(t, 2, w.Count(), "Ровно один блок добавлен за один фронт нажатия")

	placed, ok := w.BlockAt(vec.Vec3{X: 0, Y: 1, Z: 0})
	assert.True(t, ok, "Новый блок занимает ячейку над задетой")
	assert.Equal(t, decision.Position, placed.Position)
}

func TestSession_ClickRemovesBlock(t *testing.T) {
	w := world.New()
	id, err := w.Spawn(vec.Vec3{X: 0, Y: 0, Z: 0}.Center())
	require.NoError(t, err)

	session := NewSession(w, 10, nil)

	decision, err := session.Click(lookDown(), centerCursor(), testViewport(), ActionRemove)
	require.NoError(t, err)

	assert.Equal(t, DecisionRemove, decision.Kind)
	assert.Equal(t, id, decision.Target)
	assert.Equal(t, 0, w.Count(), "Задетый блок удалён")
}

func TestSession_MissIsNoOp(t *testing.T) {
	w := world.New()
	_, err := w.Spawn(vec.Vec3{X: 0, Y: 0, Z: 0}.Center())
	require.NoError(t, err)

	session := NewSession(w, 10, nil)

	// Взгляд вертикально вверх — в пустое небо
	lookUp := camera.Pose{
		Position: vec.Vec3Float{X: 0.5, Y: 5, Z: 0.5},
		Pitch:    math.Pi / 2,
	}

	decision, err := session.Click(lookUp, centerCursor(), testViewport(), ActionPlace)
	require.NoError(t, err)

	assert.Equal(t, DecisionNone, decision.Kind)
	assert.Equal(t, 1, w.Count(), "Мир не изменился")
}

func TestSession_OutOfReach(t *testing.T) {
	w := world.New()
	_, err := w.Spawn(vec.Vec3{X: 0, Y: 0, Z: 0}.Center())
	require.NoError(t, err)

	// Верхняя грань на дистанции 4 от камеры, радиус меньше
	session := NewSession(w, 3, nil)

	decision, err := session.Click(lookDown(), centerCursor(), testViewport(), ActionPlace)
	require.NoError(t, err)

	assert.Equal(t, DecisionNone, decision.Kind, "Блок за пределами радиуса недосягаем")
	assert.Equal(t, 1, w.Count())
}

func TestSession_StackingClicks(t *testing.T) {
	// Каждый фронт нажатия ставит ровно один блок: столбик растёт к камере
	w := world.New()
	_, err := w.Spawn(vec.Vec3{X: 0, Y: 0, Z: 0}.Center())
	require.NoError(t, err)

	session := NewSession(w, 10, nil)

	for i := 1; i <= 3; i++ {
		decision, err := session.Click(lookDown(), centerCursor(), testViewport(), ActionPlace)
		require.NoError(t, err)
		assert.Equal(t, DecisionPlace, decision.Kind, "Клик %d", i)
		assert.Equal(t, 1+i, w.Count(), "Клик %d добавляет ровно один блок", i)
	}

	for y := 0; y <= 3; y++ {
		_, ok := w.BlockAt(vec.Vec3{X: 0, Y: y, Z: 0})
		assert.True(t, ok, "Ожидался блок в ячейке (0,%d,0)", y)
	}
}

func TestSession_MaxDistanceFallback(t *testing.T) {
	w := world.New()

	session := NewSession(w, 0, nil)
	assert.Equal(t, DefaultMaxDistance, session.MaxDistance(), "Неположительный радиус заменяется дефолтным")

	session = NewSession(w, 25, nil)
	assert.Equal(t, 25.0, session.MaxDistance())
}

func TestSession_PickDoesNotMutate(t *testing.T) {
	w := world.New()
	id, err := w.Spawn(vec.Vec3{X: 0, Y: 0, Z: 0}.Center())
	require.NoError(t, err)

	session := NewSession(w, 10, nil)

	hit, found, err := session.Pick(lookDown(), centerCursor(), testViewport())
	require.NoError(t, err)

	assert.True(t, found)
	assert.Equal(t, id, hit.Block)
	assert.InDelta(t, 4.0, hit.Distance, 1e-9)
	assert.Equal(t, vec.Vec3Float{Y: 1}, hit.Normal)
	assert.Equal(t, 1, w.Count(), "Pick не изменяет мир")
}

func TestSession_EmitsWorldEvents(t *testing.T) {
	w := world.NewWithEvents(16)
	_, err := w.Spawn(vec.Vec3{X: 0, Y: 0, Z: 0}.Center())
	require.NoError(t, err)
	<-w.Events() // событие стартового блока

	session := NewSession(w, 10, nil)

	_, err = session.Click(lookDown(), centerCursor(), testViewport(), ActionPlace)
	require.NoError(t, err)

	ev := <-w.Events()
	assert.Equal(t, world.EventTypeBlockPlaced, ev.Type)
	assert.Equal(t, vec.Vec3Float{X: 0.5, Y: 1.5, Z: 0.5}, ev.Block.Position)

	_, err = session.Click(lookDown(), centerCursor(), testViewport(), ActionRemove)
	require.NoError(t, err)

	ev = <-w.Events()
	assert.Equal(t, world.EventTypeBlockRemoved, ev.Type)
}
