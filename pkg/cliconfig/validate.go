package cliconfig

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/raizdigital/especies/pkg/i18n"
	"github.com/raizdigital/especies/pkg/logging"
)

// Validate checks the configuration values for consistency.
func (c *CLIConfig) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("apiUrl %q must be an absolute http(s) URL", c.APIURL)
	}
	if c.Timeout < 1 || c.Timeout > MaxTimeout {
		return fmt.Errorf("timeout %d is out of range (1-%d seconds)", c.Timeout, MaxTimeout)
	}
	if _, err := i18n.ParseLanguage(c.Lang); err != nil {
		return fmt.Errorf("lang: %w", err)
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("logLevel %q is invalid (debug, info, warn, error)", c.LogLevel)
	}
	if f := strings.ToLower(c.LogFormat); f != "text" && f != "json" {
		return fmt.Errorf("logFormat %q is invalid (text, json)", c.LogFormat)
	}
	if _, _, err := net.SplitHostPort(c.WebAddr); err != nil {
		return fmt.Errorf("webAddr %q: %w", c.WebAddr, err)
	}
	if _, _, err := net.SplitHostPort(c.SandboxAddr); err != nil {
		return fmt.Errorf("sandboxAddr %q: %w", c.SandboxAddr, err)
	}
	return nil
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *CLIConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Value returns the display value of key.
func (c *CLIConfig) Value(key string) string {
	switch key {
	case "apiUrl":
		return c.APIURL
	case "timeout":
		return fmt.Sprintf("%ds", c.Timeout)
	case "lang":
		return c.Lang
	case "logLevel":
		return c.LogLevel
	case "logFormat":
		return c.LogFormat
	case "logFile":
		return c.LogFile
	case "webAddr":
		return c.WebAddr
	case "sandboxAddr":
		return c.SandboxAddr
	case "json":
		return fmt.Sprintf("%t", c.JSON)
	}
	return ""
}
