package cliconfig

// DefaultAPIURL is the default species collection URL.
const DefaultAPIURL = "http://localhost:8080/api/especies"

// DefaultTimeout is the default HTTP timeout in seconds.
const DefaultTimeout = 30

// MaxTimeout is the largest accepted timeout in seconds.
const MaxTimeout = 600

// DefaultLang is the default language of the texts.
const DefaultLang = "pt-BR"

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "warn"

// DefaultLogFormat is the default log format.
const DefaultLogFormat = "text"

// DefaultWebAddr is the default listen address of the web UI.
const DefaultWebAddr = "localhost:3000"

// DefaultSandboxAddr is the default listen address of the sandbox backend.
const DefaultSandboxAddr = "localhost:8080"

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		APIURL:      DefaultAPIURL,
		Timeout:     DefaultTimeout,
		Lang:        DefaultLang,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		WebAddr:     DefaultWebAddr,
		SandboxAddr: DefaultSandboxAddr,
		Sources:     make(map[string]string),
	}

	// Mark all as default source
	for _, key := range Keys {
		cfg.Sources[key] = SourceDefault
	}

	return cfg
}
