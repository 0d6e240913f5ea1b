// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"errors"
	"fmt"
)

var (
	// ErrBuild is the sentinel error wrapped by BuildError.
	ErrBuild = errors.New("archive build failed")
	// ErrIntegrity is the sentinel error wrapped by IntegrityError.
	// It chains to ErrBuild, so errors.Is(err, ErrBuild) also holds for
	// integrity failures.
	ErrIntegrity = fmt.Errorf("%w: integrity verification failed", ErrBuild)
)

// BuildError is returned when archive construction fails for a skill.
// It wraps ErrBuild for errors.Is() compatibility.
type BuildError struct {
	// SkillName identifies the skill whose build failed.
	SkillName string
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to build archive for skill %q: %v", e.SkillName, e.Cause)
	}
	return fmt.Sprintf("failed to build archive for skill %q", e.SkillName)
}

// Unwrap returns the sentinel and the underlying cause for errors.Is/As.
func (e *BuildError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrBuild, e.Cause}
	}
	return []error{ErrBuild}
}

// IntegrityError is returned when post-write verification detects a corrupt
// entry. It wraps ErrIntegrity (and transitively ErrBuild).
type IntegrityError struct {
	// SkillName identifies the skill whose archive failed verification.
	SkillName string
	// Entry is the archive-internal path of the first corrupt entry, if known.
	Entry string
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("archive for skill %q failed verification at entry %q", e.SkillName, e.Entry)
	}
	return fmt.Sprintf("archive for skill %q failed verification", e.SkillName)
}

// Unwrap returns the sentinel and the underlying cause for errors.Is/As.
func (e *IntegrityError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrIntegrity, e.Cause}
	}
	return []error{ErrIntegrity}
}
