// SPDX-License-Identifier: MPL-2.0

package fsguard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrSecurityViolation is the sentinel error wrapped by SecurityViolationError.
var ErrSecurityViolation = errors.New("path escapes allowed directory")

// SecurityViolationError is returned when a path fails containment
// validation. Error() exposes only the raw offending input; the resolved
// paths are available in Detail for diagnostics.
type SecurityViolationError struct {
	// Input is the raw candidate path as supplied by the caller.
	Input string
	// Base is the raw allowed base directory.
	Base string
	// Detail carries the resolved paths for diagnostic output. Never show
	// this to end users.
	Detail string
}

// Error implements the error interface.
func (e *SecurityViolationError) Error() string {
	return fmt.Sprintf("path %q escapes the allowed directory", e.Input)
}

// Unwrap returns ErrSecurityViolation for errors.Is() compatibility.
func (e *SecurityViolationError) Unwrap() error { return ErrSecurityViolation }

// Validate checks that candidate lies within allowedBase and returns the
// canonical absolute form of candidate. Both paths are canonicalized
// (absolute, ".." collapsed, symlinks resolved) before comparison, so
// traversal sequences and symlink escapes are rejected regardless of how
// they are spelled.
//
// The candidate does not need to exist: paths about to be created are
// resolved through their nearest existing ancestor, so a symlinked parent
// cannot smuggle a new file outside the base.
func Validate(candidate, allowedBase string) (string, error) {
	resolvedBase, err := canonicalize(allowedBase)
	if err != nil {
		return "", &SecurityViolationError{
			Input:  candidate,
			Base:   allowedBase,
			Detail: fmt.Sprintf("cannot resolve base: %v", err),
		}
	}

	resolved, err := canonicalize(candidate)
	if err != nil {
		return "", &SecurityViolationError{
			Input:  candidate,
			Base:   allowedBase,
			Detail: fmt.Sprintf("cannot resolve candidate: %v", err),
		}
	}

	if !contains(resolvedBase, resolved) {
		return "", &SecurityViolationError{
			Input:  candidate,
			Base:   allowedBase,
			Detail: fmt.Sprintf("%s resolves outside %s", resolved, resolvedBase),
		}
	}

	return resolved, nil
}

// canonicalize returns the absolute, symlink-free form of path. Trailing
// components that do not exist yet are resolved through the nearest
// existing ancestor before being re-joined.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	abs = filepath.Clean(abs)

	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("resolving symlinks: %w", err)
	}

	// Walk up to the nearest existing ancestor, resolve that, then re-join
	// the not-yet-existing remainder.
	prefix := abs
	var suffix string
	for {
		parent := filepath.Dir(prefix)
		if parent == prefix {
			// Hit the filesystem root without finding anything.
			return abs, nil
		}
		suffix = filepath.Join(filepath.Base(prefix), suffix)
		prefix = parent

		resolvedPrefix, evalErr := filepath.EvalSymlinks(prefix)
		if evalErr == nil {
			return filepath.Join(resolvedPrefix, suffix), nil
		}
		if !os.IsNotExist(evalErr) {
			return "", fmt.Errorf("resolving symlinks: %w", evalErr)
		}
	}
}

// contains reports whether candidate equals base or is a descendant of it.
// Both arguments must already be canonical.
func contains(base, candidate string) bool {
	rel, err := filepath.Rel(base, candidate)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
