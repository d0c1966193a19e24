package editor

import (
	"sync"
	"time"

	"github.com/Afrovis/castle-wars/internal/camera"
	"github.com/Afrovis/castle-wars/internal/logging"
	"github.com/Afrovis/castle-wars/internal/vec"
	"github.com/Afrovis/castle-wars/internal/world"
)

// DefaultMaxDistance — радиус взаимодействия по умолчанию
const DefaultMaxDistance = 10.0

// Session связывает разрешение взаимодействий с миром.
// Одна сессия — один редактируемый мир; мьютекс сериализует пару
// «снимок + применение решения», чтобы параллельные клики не
// перемешивали сканирование с мутацией.
type Session struct {
	mu          sync.Mutex
	world       *world.World
	maxDistance float64
	metrics     *Metrics
}

// NewSession создаёт сессию редактирования.
// metrics может быть nil — тогда метрики не собираются.
func NewSession(w *world.World, maxDistance float64, metrics *Metrics) *Session {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	return &Session{
		world:       w,
		maxDistance: maxDistance,
		metrics:     metrics,
	}
}

// World возвращает мир сессии
func (s *Session) World() *world.World {
	return s.world
}

// MaxDistance возвращает радиус взаимодействия сессии
func (s *Session) MaxDistance() float64 {
	return s.maxDistance
}

// Click обрабатывает один фронт нажатия кнопки: строит экранный луч,
// разрешает взаимодействие и применяет решение к миру. Возвращает
// принятое решение; DecisionNone при промахе — нормальный исход.
func (s *Session) Click(pose camera.Pose, cursor vec.Vec2Float, viewport camera.Viewport, action Action) (Decision, error) {
	ray, err := camera.ScreenRay(pose, cursor, viewport)
	if err != nil {
		return Decision{}, err
	}

	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	decision, err := Resolve(ray, s.world.Snapshot(), s.maxDistance, action)
	if err != nil {
		return Decision{}, err
	}

	// Мутация выполняется строго после завершения сканирования
	switch decision.Kind {
	case DecisionPlace:
		if _, err := s.world.Spawn(decision.Position); err != nil {
			// Вычисленная ячейка занята: мир не меняется
			logging.Warn("установка блока отклонена: %v", err)
			decision = Decision{Kind: DecisionNone, Hit: decision.Hit}
		}
	case DecisionRemove:
		if !s.world.Despawn(decision.Target) {
			logging.Warn("удаление блока %s: дескриптор устарел", decision.Target)
			decision = Decision{Kind: DecisionNone, Hit: decision.Hit}
		}
	}

	s.metrics.observe(decision.Kind, time.Since(start))
	return decision, nil
}

// Pick выполняет поиск попадания без изменения мира
func (s *Session) Pick(pose camera.Pose, cursor vec.Vec2Float, viewport camera.Viewport) (HitRecord, bool, error) {
	ray, err := camera.ScreenRay(pose, cursor, viewport)
	if err != nil {
		return HitRecord{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return FindNearestHit(ray, s.world.Snapshot(), s.maxDistance)
}
