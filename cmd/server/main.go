package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Afrovis/castle-wars/internal/api"
	"github.com/Afrovis/castle-wars/internal/config"
	"github.com/Afrovis/castle-wars/internal/editor"
	"github.com/Afrovis/castle-wars/internal/eventbus"
	"github.com/Afrovis/castle-wars/internal/logging"
	"github.com/Afrovis/castle-wars/internal/observability"
	"github.com/Afrovis/castle-wars/internal/world"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("editor"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🏰 Запуск Castle Wars editor server...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка чтения конфигурации: %v", err)
		os.Exit(1)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	restAddr := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	metricsAddr := fmt.Sprintf(":%d", cfg.Server.GetMetricsPort())
	logging.Info("📡 Конфигурация: REST=%s, metrics=%s", restAddr, metricsAddr)

	// === OBSERVABILITY ===
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTelemetry, err := observability.InitTelemetry(ctx, "castle-wars-editor")
	if err != nil {
		// Трассировка опциональна: без коллектора работаем дальше
		logging.Warn("OpenTelemetry недоступен: %v", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	// === ШИНА СОБЫТИЙ ===
	var bus eventbus.EventBus
	if cfg.EventBus.URL != "" {
		jsBus, err := eventbus.NewJetStreamBus(cfg.EventBus.URL, cfg.EventBus.Stream, 24*time.Hour)
		if err != nil {
			logging.Error("❌ Ошибка подключения к NATS: %v", err)
			os.Exit(1)
		}
		defer jsBus.Close()
		bus = jsBus
		logging.Info("📨 События публикуются в JetStream (%s)", cfg.EventBus.URL)
	} else {
		bus = eventbus.NewMemoryBus(1024)
		logging.Info("📨 Используется in-memory шина событий")
	}
	eventbus.Init(bus)

	if err := eventbus.StartLoggingListener(bus); err != nil {
		logging.Warn("LoggingListener не запущен: %v", err)
	}

	busExporter := eventbus.NewMetricsExporter(bus)
	busExporter.Start(metricsAddr)
	defer busExporter.Stop()

	// === МИР ===
	w := world.NewWithEvents(1024)
	go eventbus.BridgeWorldEvents("editor", w.Events())

	generator := world.NewGenerator(cfg.World.GetSeed())
	generator.MaxHeight = cfg.World.GetMaxHeight()

	placed, err := generator.Generate(w, cfg.World.GetHalfExtent())
	if err != nil {
		logging.Error("❌ Ошибка генерации стартового ландшафта: %v", err)
		os.Exit(1)
	}
	logging.Info("🌍 Стартовый ландшафт: %d блоков (seed=%d)", placed, cfg.World.GetSeed())

	// === СЕССИЯ РЕДАКТИРОВАНИЯ ===
	session := editor.NewSession(w, cfg.Editor.GetMaxDistance(), editor.NewMetrics())

	// === REST API ===
	restServer := api.NewRestServer(api.Config{
		Port:    restAddr,
		Session: session,
		Camera:  cfg.Camera.Settings(),
	})
	restServer.Start()

	logging.Info("✅ Editor server запущен")

	// Ожидаем сигнал завершения
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logging.Info("⏳ Завершение работы...")
	if err := shutdownTelemetry(context.Background()); err != nil {
		logging.Warn("Ошибка остановки телеметрии: %v", err)
	}
	logging.Info("👋 Editor server остановлен")
}
