package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Afrovis/castle-wars/internal/vec"
)

const eps = 1e-9

func TestPose_ForwardAtRest(t *testing.T) {
	pose := Pose{}

	fwd := pose.Forward()
	assert.InDelta(t, 0, fwd.X, eps)
	assert.InDelta(t, 0, fwd.Y, eps)
	assert.InDelta(t, -1, fwd.Z, eps, "При нулевых углах камера смотрит вдоль -Z")
}

func TestPose_ForwardYawQuarterTurn(t *testing.T) {
	// Поворот на 90° влево: взгляд вдоль -X
	pose := Pose{Yaw: math.Pi / 2}

	fwd := pose.Forward()
	assert.InDelta(t, -1, fwd.X, eps)
	assert.InDelta(t, 0, fwd.Y, eps)
	assert.InDelta(t, 0, fwd.Z, eps)
}

func TestPose_ForwardPitchUp(t *testing.T) {
	pose := Pose{Pitch: math.Pi / 2}

	fwd := pose.Forward()
	assert.InDelta(t, 0, fwd.X, eps)
	assert.InDelta(t, 1, fwd.Y, eps, "Тангаж +90° — взгляд строго вверх")
	assert.InDelta(t, 0, fwd.Z, eps)
}

func TestPose_BasisIsOrthonormal(t *testing.T) {
	poses := []Pose{
		{},
		{Yaw: 0.7},
		{Pitch: -0.5},
		{Yaw: 2.1, Pitch: 0.9},
		{Yaw: -1.3, Pitch: -1.2},
	}

	for _, pose := range poses {
		fwd := pose.Forward()
		right := pose.Right()
		up := pose.Up()

		assert.InDelta(t, 1, fwd.Length(), eps, "Forward единичный (yaw=%g pitch=%g)", pose.Yaw, pose.Pitch)
		assert.InDelta(t, 1, right.Length(), eps, "Right единичный")
		assert.InDelta(t, 1, up.Length(), eps, "Up единичный")

		assert.InDelta(t, 0, fwd.Dot(right), eps, "Forward перпендикулярен Right")
		assert.InDelta(t, 0, fwd.Dot(up), eps, "Forward перпендикулярен Up")
		assert.InDelta(t, 0, right.Dot(up), eps, "Right перпендикулярен Up")
	}
}

func TestScreenRay_CenterCursorMatchesForward(t *testing.T) {
	pose := Pose{
		Position: vec.Vec3Float{X: 1, Y: 2, Z: 3},
		Yaw:      0.4,
		Pitch:    -0.2,
	}
	viewport := Viewport{Width: 800, Height: 600, FOVY: math.Pi / 3}

	ray, err := ScreenRay(pose, vec.Vec2Float{X: 400, Y: 300}, viewport)
	require.NoError(t, err)

	assert.Equal(t, pose.Position, ray.Origin, "Луч начинается в позиции камеры")

	fwd := pose.Forward()
	assert.InDelta(t, fwd.X, ray.Direction.X, eps, "Курсор в центре экрана — луч вдоль взгляда")
	assert.InDelta(t, fwd.Y, ray.Direction.Y, eps)
	assert.InDelta(t, fwd.Z, ray.Direction.Z, eps)
}

func TestScreenRay_DirectionIsNormalized(t *testing.T) {
	pose := Pose{Yaw: 1.1, Pitch: 0.3}
	viewport := Viewport{Width: 1280, Height: 720, FOVY: math.Pi / 2}

	corners := []vec.Vec2Float{
		{X: 0, Y: 0},
		{X: 1280, Y: 0},
		{X: 0, Y: 720},
		{X: 1280, Y: 720},
		{X: 17, Y: 333},
	}

	for _, cursor := range corners {
		ray, err := ScreenRay(pose, cursor, viewport)
		require.NoError(t, err)
		assert.InDelta(t, 1, ray.Direction.Length(), eps, "Направление луча нормализовано (курсор %v)", cursor)
	}
}

func TestScreenRay_CursorOffsets(t *testing.T) {
	pose := Pose{}
	viewport := Viewport{Width: 800, Height: 600, FOVY: math.Pi / 2}

	// Курсор правее центра отклоняет луч в +X
	right, err := ScreenRay(pose, vec.Vec2Float{X: 600, Y: 300}, viewport)
	require.NoError(t, err)
	assert.Greater(t, right.Direction.X, 0.0)

	// Курсор выше центра отклоняет луч в +Y (экранный y растёт вниз)
	up, err := ScreenRay(pose, vec.Vec2Float{X: 400, Y: 150}, viewport)
	require.NoError(t, err)
	assert.Greater(t, up.Direction.Y, 0.0)
}

func TestScreenRay_RejectsDegenerateViewport(t *testing.T) {
	pose := Pose{}
	cursor := vec.Vec2Float{X: 0, Y: 0}

	_, err := ScreenRay(pose, cursor, Viewport{Width: 0, Height: 600, FOVY: 1})
	assert.Error(t, err)

	_, err = ScreenRay(pose, cursor, Viewport{Width: 800, Height: -1, FOVY: 1})
	assert.Error(t, err)

	_, err = ScreenRay(pose, cursor, Viewport{Width: 800, Height: 600, FOVY: 0})
	assert.Error(t, err)

	_, err = ScreenRay(pose, cursor, Viewport{Width: 800, Height: 600, FOVY: math.Pi})
	assert.Error(t, err)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 5.0, s.Speed)
	assert.Equal(t, 0.003, s.Sensitivity)
	assert.InDelta(t, math.Pi/2-0.01, s.PitchLimit, eps)
}
