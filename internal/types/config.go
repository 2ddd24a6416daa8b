package types

// RunMode is the deployment mode of the service
type RunMode string

const (
	ModeLocal      RunMode = "local"
	ModeProduction RunMode = "production"
)

// LogLevel is the minimum level written by the logger
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
