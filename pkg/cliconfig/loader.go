package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory for global config
	GlobalConfigDir = "especies"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".especiesrc.yaml", ".especiesrc.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FindLocalConfig searches for .especiesrc.yaml or .especiesrc.yml in the current directory.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findFirst(cwd, LocalConfigFileNames), nil
}

// FindGlobalConfig returns the path to the global config file.
// Returns empty string if not found.
func FindGlobalConfig() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		//nolint:nilerr // no config dir means no global config
		return "", nil
	}
	return findFirst(filepath.Join(configDir, GlobalConfigDir), GlobalConfigFileNames), nil
}

// GetGlobalConfigSearchPaths returns the paths that will be searched for global config.
func GetGlobalConfigSearchPaths() []string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	paths := make([]string, len(GlobalConfigFileNames))
	for i, name := range GlobalConfigFileNames {
		paths[i] = filepath.Join(configDir, GlobalConfigDir, name)
	}
	return paths
}

func findFirst(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile loads a CLIConfig from a YAML file. SetFields records the
// top-level keys present in the file.
func LoadConfigFile(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, newSyntaxError(path, err)
	}

	cfg := CLIConfig{
		SetFields: make(map[string]bool),
		Sources:   make(map[string]string),
	}
	if len(doc.Content) == 0 {
		return &cfg, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ConfigError{Path: path, Line: root.Line, Column: root.Column, Message: "expected a mapping of settings"}
	}

	// Keys are decoded one at a time so an error points at its value.
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		pair := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{key, value}}
		if err := pair.Decode(&cfg); err != nil {
			return nil, &ConfigError{Path: path, Line: value.Line, Column: value.Column, Message: typeErrorMessage(err)}
		}
		cfg.SetFields[key.Value] = true
	}
	return &cfg, nil
}

// ConfigError represents a configuration file error with location info.
// Column is zero when only the line is known.
type ConfigError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ConfigError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return e.Path + " (line " + strconv.Itoa(e.Line) + ", column " + strconv.Itoa(e.Column) + "): " + e.Message
	case e.Line > 0:
		return e.Path + " (line " + strconv.Itoa(e.Line) + "): " + e.Message
	}
	return e.Path + ": " + e.Message
}

var yamlLinePrefix = regexp.MustCompile(`^(?:yaml: )?line (\d+): `)

// newSyntaxError keeps the line yaml reports for malformed documents.
func newSyntaxError(path string, err error) *ConfigError {
	msg := err.Error()
	if m := yamlLinePrefix.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &ConfigError{Path: path, Line: line, Message: msg[len(m[0]):]}
	}
	return &ConfigError{Path: path, Message: strings.TrimPrefix(msg, "yaml: ")}
}

// typeErrorMessage strips the location prefix yaml puts on decode errors.
func typeErrorMessage(err error) string {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		msg := typeErr.Errors[0]
		if m := yamlLinePrefix.FindStringSubmatch(msg); m != nil {
			return msg[len(m[0]):]
		}
		return msg
	}
	return err.Error()
}

// LoadAll loads configuration from all sources and merges them.
// Precedence: flags > env > local config > global config > defaults.
// Flags are applied by the caller.
func LoadAll() (*CLIConfig, error) {
	globalPath, err := FindGlobalConfig()
	if err != nil {
		return nil, err
	}
	localPath, err := FindLocalConfig()
	if err != nil {
		return nil, err
	}
	return LoadFrom(globalPath, localPath)
}

// LoadFrom is LoadAll with explicit file paths. Empty paths are skipped.
func LoadFrom(globalPath, localPath string) (*CLIConfig, error) {
	// Start with defaults
	cfg := NewDefault()

	if globalPath != "" {
		globalCfg, err := LoadConfigFile(globalPath)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, globalCfg, SourceGlobal)
	}

	if localPath != "" {
		localCfg, err := LoadConfigFile(localPath)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, localCfg, SourceLocal)
	}

	LoadEnvConfig(cfg)

	return cfg, nil
}
