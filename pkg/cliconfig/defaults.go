package cliconfig

// DefaultAPIURL is the backend a freshly generated application listens on.
const DefaultAPIURL = "http://localhost:8080/"

// DefaultTimeout is the default HTTP timeout in seconds.
const DefaultTimeout = 30

// MaxTimeout bounds Timeout.
const MaxTimeout = 3600

// DefaultPageSize is the default page size for list commands.
const DefaultPageSize = 20

// MaxPageSize bounds PageSize.
const MaxPageSize = 2000

// DefaultLogLevel keeps the CLI quiet unless something goes wrong.
const DefaultLogLevel = "warn"

// DefaultLogFormat is human-readable logging.
const DefaultLogFormat = "text"

// NewDefault creates a Config holding the default values.
func NewDefault() *Config {
	cfg := &Config{
		APIURL:    DefaultAPIURL,
		Timeout:   DefaultTimeout,
		PageSize:  DefaultPageSize,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources:   make(map[string]string),
	}
	for _, key := range []string{"apiUrl", "timeout", "pageSize", "logLevel", "logFormat", "json"} {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}
