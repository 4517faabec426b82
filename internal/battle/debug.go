package battle

import "sync/atomic"

// debugLoggingEnabled controls whether per-activation debug logging is enabled.
// This is a package-level flag to avoid the overhead of checking log level on every call.
// Set via EnableDebugLogging() during initialization based on config.LogLevel.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables debug logging for the battle engine.
// Must be called during initialization (e.g., from main.go after parsing config).
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
// Use this to guard debug log calls on the activation path:
//
//	if battle.IsDebugEnabled() {
//	    slog.Debug("unit activated", "unit", u.Name(), "delay", u.TurnDelay())
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
