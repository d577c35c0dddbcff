package config

import "sync"

// RuntimeSettings holds toggles that can change while the app runs
type RuntimeSettings struct {
	mu    sync.RWMutex
	debug bool
}

var globalRuntimeSettings = &RuntimeSettings{}

// GetDebug returns whether debug logging is enabled
func GetDebug() bool {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.debug
}

// SetDebug enables or disables debug logging
func SetDebug(enabled bool) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.debug = enabled
}
