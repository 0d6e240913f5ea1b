// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"skillex-cli/internal/issue"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "skillex"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "skillex"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"

	// EnvSkillsDir overrides the skills directory.
	EnvSkillsDir = "SKILLEX_SKILLS_DIR"
	// EnvOutputDir overrides the output directory.
	EnvOutputDir = "SKILLEX_OUTPUT_DIR"
	// EnvOutputBase is the legacy base directory variable; archives default
	// to $DC/skills when no explicit output directory is configured.
	EnvOutputBase = "DC"
)

// ConfigDir returns the skillex configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DefaultSkillsDir returns the default skills directory, ~/.claude/skills.
func DefaultSkillsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "skills"), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level cache state. Callers that want caching can wrap this function.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("skills_dir", string(defaults.SkillsDir))
	v.SetDefault("output_dir", string(defaults.OutputDir))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	resolvedPath := ""

	// If a custom config file path is set via --config flag, use it exclusively.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadTOMLIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Check that the file contains valid TOML syntax").
				WithSuggestion("Verify the configuration keys match the expected schema").
				Wrap(err).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		tomlPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(tomlPath) {
			if err := loadTOMLIntoViper(v, tomlPath); err != nil {
				return nil, "", issue.NewErrorContext().
					WithOperation("load configuration").
					WithResource(tomlPath).
					WithSuggestion("Check that the file contains valid TOML syntax").
					WithSuggestion("Verify the configuration keys match the expected schema").
					Wrap(err).
					BuildError()
			}
			resolvedPath = tomlPath
		} else {
			// Also check current directory
			localPath := ConfigFileName + "." + ConfigFileExt
			if fileExists(localPath) {
				if err := loadTOMLIntoViper(v, localPath); err != nil {
					return nil, "", issue.NewErrorContext().
						WithOperation("load configuration").
						WithResource(localPath).
						WithSuggestion("Check that the file contains valid TOML syntax").
						WithSuggestion("Verify the configuration keys match the expected schema").
						Wrap(err).
						BuildError()
				}
				resolvedPath = localPath
			}
			// If no config file found, use defaults (no error)
		}
	}

	// Environment variables outrank the config file.
	if dir := os.Getenv(EnvSkillsDir); dir != "" {
		v.Set("skills_dir", dir)
	}
	if dir := os.Getenv(EnvOutputDir); dir != "" {
		v.Set("output_dir", dir)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", &ConfigurationError{Reason: "config file has invalid fields", Cause: errs[0]}
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadTOMLIntoViper parses a TOML file and merges its contents into Viper,
// preserving defaults and allowing later overrides.
func loadTOMLIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var configMap map[string]any
	if err := toml.Unmarshal(data, &configMap); err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// Engine derives the engine-facing EngineConfig from the loaded Config,
// filling defaults and resolving both directories to absolute paths.
//
// The output directory must be resolvable from the config file, the
// environment, or $DC; anything else is a ConfigurationError and the whole
// invocation aborts before any skill is processed.
func (c *Config) Engine() (EngineConfig, error) {
	skillsRoot := string(c.SkillsDir)
	if skillsRoot == "" {
		def, err := DefaultSkillsDir()
		if err != nil {
			return EngineConfig{}, &ConfigurationError{Reason: "cannot determine default skills directory", Cause: err}
		}
		skillsRoot = def
	}

	outputRoot := string(c.OutputDir)
	if outputRoot == "" {
		base := os.Getenv(EnvOutputBase)
		if base == "" {
			return EngineConfig{}, &ConfigurationError{
				Reason: fmt.Sprintf("no output directory configured and %s is not set", EnvOutputBase),
			}
		}
		outputRoot = filepath.Join(base, "skills")
	}

	absSkills, err := filepath.Abs(expandHome(skillsRoot))
	if err != nil {
		return EngineConfig{}, &ConfigurationError{Reason: "cannot resolve skills directory", Cause: err}
	}
	absOutput, err := filepath.Abs(expandHome(outputRoot))
	if err != nil {
		return EngineConfig{}, &ConfigurationError{Reason: "cannot resolve output directory", Cause: err}
	}

	return EngineConfig{SkillsRoot: absSkills, OutputRoot: absOutput}, nil
}

// expandHome replaces a leading "~" with the user's home directory. Paths
// without the prefix (or when the home directory is unknown) pass through.
func expandHome(path string) string {
	if path != "~" && !hasHomePrefix(path) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

func hasHomePrefix(path string) bool {
	return len(path) >= 2 && path[0] == '~' && os.IsPathSeparator(path[1])
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
