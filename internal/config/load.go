package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.todo/todo.toml or OS-specific config dir)
// 3. Project config file (todo.toml or .todo.toml in current directory)
// 4. Explicit config file named by --config
// 5. CLI flags
//
// fs may be nil, in which case steps 4 and 5 are skipped.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cws, err := LoadWithSources(fs)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *pflag.FlagSet) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}
	cws := &ConfigWithSources{Config: cfg, Sources: sources}

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	// 2. User config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFileWithSources(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		cws.Files = append(cws.Files, userConfigFile)
	}

	// 3. Project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFileWithSources(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		cws.Files = append(cws.Files, projectConfigFile)
	}

	if fs != nil {
		// 4. Explicit config file
		if path, _ := fs.GetString(FlagConfig); path != "" {
			path = expandPath(path)
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("config file: %w", err)
			}
			if err := loadConfigFileWithSources(cfg, path, sources, SourceExplicit); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
			cws.Files = append(cws.Files, path)
		}

		// 5. CLI flags (they override everything)
		applyFlags(cfg, fs, sources)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// loadConfigFileWithSources decodes a TOML file over cfg and records which
// keys it set. Unknown keys are rejected.
func loadConfigFileWithSources(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	if sources != nil {
		for _, field := range configFields() {
			if md.IsDefined(field) {
				sources[field] = source
			}
		}
	}
	return nil
}

// applyFlags copies explicitly set flags into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet, sources map[string]ConfigSource) {
	set := func(flagName, field string, dst *string) {
		if !fs.Changed(flagName) {
			return
		}
		v, err := fs.GetString(flagName)
		if err != nil {
			return
		}
		*dst = v
		sources[field] = SourceFlag
	}

	set(FlagLogLevel, "log_level", &cfg.LogLevel)
	set(FlagLogFormat, "log_format", &cfg.LogFormat)
	set(FlagColor, "color", &cfg.Color)
}

// finalizeConfig normalizes values, resolves paths and validates.
func finalizeConfig(cfg *Config) error {
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))

	if !filepath.IsAbs(cfg.TodoFile) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.TodoFile = filepath.Join(wd, cfg.TodoFile)
	}

	return cfg.Validate()
}
