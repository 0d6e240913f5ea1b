// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration is the sentinel error wrapped by ConfigurationError.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrInvalidSkillsDirPath is the sentinel error wrapped by InvalidSkillsDirPathError.
	ErrInvalidSkillsDirPath = errors.New("invalid skills directory path")
	// ErrInvalidOutputDirPath is the sentinel error wrapped by InvalidOutputDirPathError.
	ErrInvalidOutputDirPath = errors.New("invalid output directory path")
)

type (
	// SkillsDirPath is the filesystem path to the directory whose immediate
	// children are skills. The zero value ("") is valid and means "use the
	// default location".
	SkillsDirPath string

	// InvalidSkillsDirPathError is returned when a SkillsDirPath value is
	// non-empty but whitespace-only. It wraps ErrInvalidSkillsDirPath for
	// errors.Is() compatibility.
	InvalidSkillsDirPathError struct {
		Value SkillsDirPath
	}

	// OutputDirPath is the filesystem path to the directory that receives
	// built archives. The zero value ("") is valid at the Config level but
	// rejected when an EngineConfig is derived.
	OutputDirPath string

	// InvalidOutputDirPathError is returned when an OutputDirPath value is
	// non-empty but whitespace-only. It wraps ErrInvalidOutputDirPath for
	// errors.Is() compatibility.
	InvalidOutputDirPathError struct {
		Value OutputDirPath
	}

	// UIConfig configures presentation behavior.
	UIConfig struct {
		// Verbose enables detailed per-skill output by default.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// Config holds the application configuration.
	Config struct {
		// SkillsDir is the directory containing skills to discover.
		SkillsDir SkillsDirPath `json:"skills_dir" mapstructure:"skills_dir"`
		// OutputDir is the directory where archives are written.
		OutputDir OutputDirPath `json:"output_dir" mapstructure:"output_dir"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// ConfigurationError is returned when the configuration cannot support
	// an invocation at all (for example no output directory is resolvable).
	// It is fatal for the whole run. It wraps ErrConfiguration for
	// errors.Is() compatibility.
	ConfigurationError struct {
		Reason string
		Cause  error
	}

	// EngineConfig is the engine-facing pair of pre-resolved absolute
	// directories. It is immutable for the lifetime of one invocation; the
	// engine never mutates or re-resolves it.
	EngineConfig struct {
		// SkillsRoot is the absolute directory whose immediate children are skills.
		SkillsRoot string
		// OutputRoot is the absolute directory that receives archives.
		OutputRoot string
	}
)

// IsValid returns whether the SkillsDirPath is usable. Non-empty values must
// contain more than whitespace.
func (p SkillsDirPath) IsValid() (bool, []error) {
	if p != "" && strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidSkillsDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidSkillsDirPathError) Error() string {
	return fmt.Sprintf("invalid skills directory path: %q is whitespace-only", string(e.Value))
}

// Unwrap returns ErrInvalidSkillsDirPath for errors.Is() compatibility.
func (e *InvalidSkillsDirPathError) Unwrap() error { return ErrInvalidSkillsDirPath }

// IsValid returns whether the OutputDirPath is usable. Non-empty values must
// contain more than whitespace.
func (p OutputDirPath) IsValid() (bool, []error) {
	if p != "" && strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidOutputDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidOutputDirPathError) Error() string {
	return fmt.Sprintf("invalid output directory path: %q is whitespace-only", string(e.Value))
}

// Unwrap returns ErrInvalidOutputDirPath for errors.Is() compatibility.
func (e *InvalidOutputDirPathError) Unwrap() error { return ErrInvalidOutputDirPath }

// IsValid returns whether the Config has valid fields, collecting
// field-level errors from each typed path.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.SkillsDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.OutputDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid configuration: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// Unwrap returns the sentinel and the underlying cause for errors.Is/As.
func (e *ConfigurationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrConfiguration, e.Cause}
	}
	return []error{ErrConfiguration}
}

// DefaultConfig returns the built-in defaults. Paths default to empty here;
// loading fills them from the environment (home directory, $DC).
func DefaultConfig() *Config {
	return &Config{
		SkillsDir: "",
		OutputDir: "",
		UI:        UIConfig{Verbose: false},
	}
}
