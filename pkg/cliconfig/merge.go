package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	mergeString(target, "apiUrl", &target.APIURL, source.APIURL, sourceType)
	if source.Timeout != 0 {
		target.Timeout = source.Timeout
		target.Sources["timeout"] = sourceType
	}
	mergeString(target, "lang", &target.Lang, source.Lang, sourceType)
	mergeString(target, "logLevel", &target.LogLevel, source.LogLevel, sourceType)
	mergeString(target, "logFormat", &target.LogFormat, source.LogFormat, sourceType)
	mergeString(target, "logFile", &target.LogFile, source.LogFile, sourceType)
	mergeString(target, "webAddr", &target.WebAddr, source.WebAddr, sourceType)
	mergeString(target, "sandboxAddr", &target.SandboxAddr, source.SandboxAddr, sourceType)

	// For booleans, checking `if source.X` cannot detect an explicit false.
	// SetFields (populated during file loading) tells whether the key was
	// present; without it only true is merged.
	if boolIsSet(source, "json") {
		target.JSON = source.JSON
		target.Sources["json"] = sourceType
	}
}

func mergeString(target *CLIConfig, key string, dst *string, value, sourceType string) {
	if value == "" {
		return
	}
	*dst = value
	target.Sources[key] = sourceType
}

func boolIsSet(cfg *CLIConfig, yamlKey string) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	return yamlKey == "json" && cfg.JSON
}
