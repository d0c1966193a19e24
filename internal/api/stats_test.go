package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Afrovis/castle-wars/internal/vec"
	"github.com/Afrovis/castle-wars/internal/world"
)

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{42 * time.Second, "42с"},
		{3*time.Minute + 5*time.Second, "3м 5с"},
		{2*time.Hour + 15*time.Minute, "2ч 15м 0с"},
		{26*time.Hour + 30*time.Minute, "1д 2ч 30м 0с"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, formatUptime(c.d), "formatUptime(%v)", c.d)
	}
}

func TestStatsCollector_Collect(t *testing.T) {
	w := world.New()
	for x := 0; x < 3; x++ {
		_, err := w.Spawn(vec.Vec3{X: x, Y: 0, Z: 0}.Center())
		require.NoError(t, err)
	}

	report := NewStatsCollector().Collect(w)

	assert.Equal(t, 3, report.BlockCount, "Сводка отражает размер мира")
	assert.NotEmpty(t, report.Uptime)
	assert.Greater(t, report.MemoryMB, 0.0)
	assert.Greater(t, report.Goroutines, 0)
}
