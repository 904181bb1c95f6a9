package logging

import (
	"io"
	"sync"
)

var (
	mu       sync.RWMutex
	instance *Logger
)

// InitLogger builds the process-wide logger from config and installs it
func InitLogger(config *LogConfig) error {
	logger, err := NewLogger(config)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		_ = instance.Close()
	}
	instance = logger
	return nil
}

// SetGlobalLogger replaces the process-wide logger, mostly for tests
func SetGlobalLogger(logger *Logger) {
	mu.Lock()
	defer mu.Unlock()
	instance = logger
}

// GetGlobalLogger returns the process-wide logger.
// Before InitLogger is called it returns a logger that discards output.
func GetGlobalLogger() *Logger {
	mu.RLock()
	l := instance
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = NewWriterLogger(io.Discard, LevelError)
	}
	return instance
}
