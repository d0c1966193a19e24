package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Afrovis/castle-wars/internal/camera"
)

// Config корневая структура конфигурации редактора
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	EventBus EventBusConfig `yaml:"eventbus"`
	World    WorldConfig    `yaml:"world"`
	Camera   CameraConfig   `yaml:"camera"`
	Editor   EditorConfig   `yaml:"editor"`
}

type ServerConfig struct {
	RESTPort    int `yaml:"rest_port"`
	MetricsPort int `yaml:"metrics_port"`
}

type EventBusConfig struct {
	URL    string `yaml:"url"`    // Адрес NATS; пусто — in-memory шина
	Stream string `yaml:"stream"` // Имя JetStream-потока
}

type WorldConfig struct {
	Seed       int64 `yaml:"seed"`
	HalfExtent int   `yaml:"half_extent"` // Полуразмер стартовой площадки в блоках
	MaxHeight  int   `yaml:"max_height"`  // Максимальная высота стартового ландшафта
}

type CameraConfig struct {
	Speed       float64 `yaml:"speed"`
	Sensitivity float64 `yaml:"sensitivity"`
}

type EditorConfig struct {
	MaxDistance float64 `yaml:"max_distance"` // Радиус взаимодействия
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "EDITOR_REST_PORT", 8088)
}

// GetMetricsPort возвращает Prometheus метрики порт с поддержкой fallback значений
func (s *ServerConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(s.MetricsPort, "EDITOR_METRICS_PORT", 2112)
}

// GetSeed возвращает сид мира; 0 заменяется дефолтным
func (w *WorldConfig) GetSeed() int64 {
	if w.Seed != 0 {
		return w.Seed
	}
	return 12345
}

// GetHalfExtent возвращает полуразмер площадки с дефолтом
func (w *WorldConfig) GetHalfExtent() int {
	if w.HalfExtent > 0 {
		return w.HalfExtent
	}
	return 8
}

// GetMaxHeight возвращает максимальную высоту ландшафта с дефолтом
func (w *WorldConfig) GetMaxHeight() int {
	if w.MaxHeight > 0 {
		return w.MaxHeight
	}
	return 4
}

// Settings возвращает параметры камеры: значения конфига поверх дефолтов
func (c *CameraConfig) Settings() camera.Settings {
	s := camera.DefaultSettings()
	if c.Speed > 0 {
		s.Speed = c.Speed
	}
	if c.Sensitivity > 0 {
		s.Sensitivity = c.Sensitivity
	}
	return s
}

// GetMaxDistance возвращает радиус взаимодействия с дефолтом
func (e *EditorConfig) GetMaxDistance() float64 {
	if e.MaxDistance > 0 {
		return e.MaxDistance
	}
	return 10.0
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	// Используем дефолтное значение
	return defaultPort
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV EDITOR_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("EDITOR_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
