package logging

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// LoggerManager управляет логгерами отдельных компонентов
type LoggerManager struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once

	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = &LoggerManager{
			loggers: make(map[string]*Logger),
		}
	})
	return globalManager
}

// GetLogger возвращает логгер компонента, создавая его при необходимости
func (lm *LoggerManager) GetLogger(component string) (*Logger, error) {
	lm.mu.RLock()
	if logger, exists := lm.loggers[component]; exists {
		lm.mu.RUnlock()
		return logger, nil
	}
	lm.mu.RUnlock()

	// Создаем новый логгер под write lock
	lm.mu.Lock()
	defer lm.mu.Unlock()

	// Проверяем еще раз на случай race condition
	if logger, exists := lm.loggers[component]; exists {
		return logger, nil
	}

	logger, err := NewLogger(component)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger for %s: %w", component, err)
	}

	lm.loggers[component] = logger
	return logger, nil
}

// MustGetLogger возвращает логгер или fallback в stdout при ошибке
func (lm *LoggerManager) MustGetLogger(component string) *Logger {
	logger, err := lm.GetLogger(component)
	if err != nil {
		return &Logger{
			component:       component,
			consoleLogger:   log.New(os.Stdout, "", log.LstdFlags),
			minConsoleLevel: INFO,
		}
	}
	return logger
}

// CloseAll закрывает все логгеры
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var lastErr error
	for component, logger := range lm.loggers {
		if err := logger.Close(); err != nil {
			lastErr = fmt.Errorf("failed to close logger for %s: %w", component, err)
		}
	}

	lm.loggers = make(map[string]*Logger)
	return lastErr
}

// GetComponentLogger возвращает логгер для компонента
func GetComponentLogger(component string) *Logger {
	return GetLoggerManager().MustGetLogger(component)
}

// InitDefaultLogger инициализирует логгер процесса по умолчанию.
// Пакетные функции Trace/Debug/Info/Warn/Error пишут именно в него.
func InitDefaultLogger(component string) error {
	logger, err := GetLoggerManager().GetLogger(component)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
	return nil
}

// CloseDefaultLogger закрывает все логгеры процесса
func CloseDefaultLogger() {
	defaultMu.Lock()
	defaultLogger = nil
	defaultMu.Unlock()
	_ = GetLoggerManager().CloseAll()
}

func defaultLog(level LogLevel, format string, args ...interface{}) {
	defaultMu.RLock()
	logger := defaultLogger
	defaultMu.RUnlock()

	if logger == nil {
		return
	}
	logger.Log(level, format, args...)
}

// Trace логирует в логгер по умолчанию с уровнем TRACE
func Trace(format string, args ...interface{}) { defaultLog(TRACE, format, args...) }

// Debug логирует в логгер по умолчанию с уровнем DEBUG
func Debug(format string, args ...interface{}) { defaultLog(DEBUG, format, args...) }

// Info логирует в логгер по умолчанию с уровнем INFO
func Info(format string, args ...interface{}) { defaultLog(INFO, format, args...) }

// Warn логирует в логгер по умолчанию с уровнем WARN
func Warn(format string, args ...interface{}) { defaultLog(WARN, format, args...) }

// Error логирует в логгер по умолчанию с уровнем ERROR
func Error(format string, args ...interface{}) { defaultLog(ERROR, format, args...) }
