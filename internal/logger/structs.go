package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `toml:"enabled"`
	UseConsoleWriter bool
}

// LogFile implements a file based logger.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	AccessLog        string `toml:"access"`
	AccessMaxSize    int    `toml:"accessMaxSize"`
	AccessMaxBackups int    `toml:"accessMaxBackups"`
	AccessMaxAge     int    `toml:"accessMaxAge"`

	InfoLog        string `toml:"info"`
	InfoMaxSize    int    `toml:"infoMaxSize"`
	InfoMaxBackups int    `toml:"infoMaxBackups"`
	InfoMaxAge     int    `toml:"infoMaxAge"`

	WarnLog        string `toml:"warn"`
	WarnMaxSize    int    `toml:"warnMaxSize"`
	WarnMaxBackups int    `toml:"warnMaxBackups"`
	WarnMaxAge     int    `toml:"warnMaxAge"`

	ErrorLog        string `toml:"error"`
	ErrorMaxSize    int    `toml:"errorMaxSize"`
	ErrorMaxBackups int    `toml:"errorMaxBackups"`
	ErrorMaxAge     int    `toml:"errorMaxAge"`

	TraceLog        string `toml:"trace"`
	TraceMaxSize    int    `toml:"traceMaxSize"`
	TraceMaxBackups int    `toml:"traceMaxBackups"`
	TraceMaxAge     int    `toml:"traceMaxAge"`
}

// Log implements the logging configuration.
type Log struct {
	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string

	// ReportCaller adds the caller file and line to every log statement.
	ReportCaller bool

	// AppName is the name of the application.
	AppName string

	// ServiceName is the name of the service instance.
	ServiceName string

	// EnableAccessLogToConsole writes the HTTP access log to console as well.
	EnableAccessLogToConsole bool

	// DisableCheckAlive disables access logging of health check calls.
	DisableCheckAlive bool

	// Console used mainly for docker and dev.
	Console Console

	// File based rolling logs for non docker environments.
	File LogFile `toml:"file"`
}
