// Package cliconfig provides configuration types and loading for the especies CLI.
package cliconfig

// CLIConfig represents the complete configuration for the especies CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.especiesrc.yaml in current directory)
// 4. Global config file (~/.config/especies/config.yaml)
// 5. Default values (lowest priority)
type CLIConfig struct {
	// Backend settings
	APIURL  string `yaml:"apiUrl" json:"apiUrl"`
	Timeout int    `yaml:"timeout" json:"timeout"` // seconds

	// Texts
	Lang string `yaml:"lang" json:"lang"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`
	LogFile   string `yaml:"logFile,omitempty" json:"logFile,omitempty"`

	// Listen addresses
	WebAddr     string `yaml:"webAddr" json:"webAddr"`
	SandboxAddr string `yaml:"sandboxAddr" json:"sandboxAddr"`

	// Output settings
	JSON bool `yaml:"json" json:"json"`

	// Source tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields holds the keys present in a loaded file, so an explicit
	// false can be told apart from a missing key.
	SetFields map[string]bool `yaml:"-" json:"-"`

	// Warnings lists values that were ignored while loading.
	Warnings []string `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)

// Keys lists the configuration keys in display order.
var Keys = []string{
	"apiUrl", "timeout", "lang", "logLevel", "logFormat", "logFile",
	"webAddr", "sandboxAddr", "json",
}
