package api

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/Afrovis/castle-wars/internal/eventbus"
	"github.com/Afrovis/castle-wars/internal/world"
)

// StatsCollector собирает сводку состояния редактора для /world/stats
type StatsCollector struct {
	start time.Time
}

// NewStatsCollector создаёт коллектор, фиксируя момент старта процесса
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{start: time.Now()}
}

// StatsReport — сводка одного опроса: мир, шина событий, процесс
type StatsReport struct {
	Uptime     string         `json:"uptime"`
	BlockCount int            `json:"block_count"`
	Events     eventbus.Stats `json:"events"`
	CPUPercent float64        `json:"cpu_percent"`
	MemoryMB   float64        `json:"memory_mb"`
	Goroutines int            `json:"goroutines"`
}

// Collect опрашивает мир, глобальную шину и процесс.
// Ошибка CPU-метрики не фатальна: поле остаётся нулевым.
func (sc *StatsCollector) Collect(w *world.World) StatsReport {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	report := StatsReport{
		Uptime:     formatUptime(time.Since(sc.start)),
		BlockCount: w.Count(),
		Events:     eventbus.BusStats(),
		MemoryMB:   float64(m.Alloc) / 1024 / 1024,
		Goroutines: runtime.NumGoroutine(),
	}
	if percent, err := sc.cpuPercent(); err == nil {
		report.CPUPercent = percent
	}
	return report
}

// cpuPercent возвращает загрузку CPU процессом; при недоступности
// метрики процесса берётся системная
func (sc *StatsCollector) cpuPercent() (float64, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	if percent, err := proc.CPUPercent(); err == nil {
		return percent, nil
	}

	percents, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, fmt.Errorf("нет данных о загрузке CPU")
	}
	return percents[0], nil
}

// formatUptime форматирует длительность работы в человекочитаемый вид
func formatUptime(uptime time.Duration) string {
	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}
