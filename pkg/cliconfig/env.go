package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names
const (
	EnvAPIURL      = "ESPECIES_API_URL"
	EnvTimeout     = "ESPECIES_TIMEOUT"
	EnvLang        = "ESPECIES_LANG"
	EnvLogLevel    = "ESPECIES_LOG_LEVEL"
	EnvLogFormat   = "ESPECIES_LOG_FORMAT"
	EnvLogFile     = "ESPECIES_LOG_FILE"
	EnvWebAddr     = "ESPECIES_WEB_ADDR"
	EnvSandboxAddr = "ESPECIES_SANDBOX_ADDR"
	EnvJSON        = "ESPECIES_JSON"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	envString(cfg, EnvAPIURL, "apiUrl", &cfg.APIURL)

	// ESPECIES_TIMEOUT accepts seconds ("15") or a unit suffix ("15s").
	if v := os.Getenv(EnvTimeout); v != "" {
		if timeout, err := strconv.Atoi(strings.TrimSuffix(v, "s")); err == nil {
			cfg.Timeout = timeout
			cfg.Sources["timeout"] = SourceEnv
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%s=%q is not a number of seconds, ignored", EnvTimeout, v))
		}
	}

	envString(cfg, EnvLang, "lang", &cfg.Lang)
	envString(cfg, EnvLogLevel, "logLevel", &cfg.LogLevel)
	envString(cfg, EnvLogFormat, "logFormat", &cfg.LogFormat)
	envString(cfg, EnvLogFile, "logFile", &cfg.LogFile)
	envString(cfg, EnvWebAddr, "webAddr", &cfg.WebAddr)
	envString(cfg, EnvSandboxAddr, "sandboxAddr", &cfg.SandboxAddr)

	if v := os.Getenv(EnvJSON); v != "" {
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			cfg.JSON = true
		case "false", "0", "no":
			cfg.JSON = false
		default:
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%s=%q is not a boolean, ignored", EnvJSON, v))
			return
		}
		cfg.Sources["json"] = SourceEnv
	}
}

func envString(cfg *CLIConfig, name, key string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
		cfg.Sources[key] = SourceEnv
	}
}
