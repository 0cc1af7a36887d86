package logger

// Level names accepted in Config.Level
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Config.Format values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Defaults for the service attributes
const (
	DefaultServiceName = "qrhunt"
	DefaultVersion     = "dev"
)

// Environment names
const (
	EnvironmentDev        = "dev"
	EnvironmentProduction = "prod"
	EnvironmentTest       = "test"
)

// Attribute keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyUserID      = "user_id"
)
