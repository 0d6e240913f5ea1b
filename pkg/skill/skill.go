// SPDX-License-Identifier: MPL-2.0

package skill

import (
	"errors"
	"fmt"
	"path/filepath"
)

// HiddenPrefix marks directory entries that are never treated as skills.
const HiddenPrefix = "."

// ErrInvalidSkill is the sentinel error wrapped by InvalidSkillError.
var ErrInvalidSkill = errors.New("invalid skill")

// InvalidSkillError is returned when Skill construction inputs are invalid.
// It wraps ErrInvalidSkill for errors.Is() compatibility.
type InvalidSkillError struct {
	Reason string
}

// Error implements the error interface.
func (e *InvalidSkillError) Error() string {
	return fmt.Sprintf("invalid skill: %s", e.Reason)
}

// Unwrap returns ErrInvalidSkill for errors.Is() compatibility.
func (e *InvalidSkillError) Unwrap() error { return ErrInvalidSkill }

// Skill is immutable metadata about a discovered skill directory.
// Instances are created by the discovery census and consumed read-only
// downstream; recomputing the statistics requires a fresh census pass.
type Skill struct {
	// Name is the skill directory base name, unique within a skills root.
	Name string
	// Path is the absolute path to the skill directory.
	Path string
	// SizeBytes is the total size of all regular files under Path.
	SizeBytes int64
	// FileCount is the number of regular files under Path (recursive).
	FileCount int
}

// New constructs a Skill, validating the inputs. The name must be non-empty
// and not hidden, the path must be absolute, and the statistics must be
// non-negative.
func New(name, path string, sizeBytes int64, fileCount int) (Skill, error) {
	switch {
	case name == "":
		return Skill{}, &InvalidSkillError{Reason: "name cannot be empty"}
	case len(name) > 0 && name[:1] == HiddenPrefix:
		return Skill{}, &InvalidSkillError{Reason: fmt.Sprintf("name %q is hidden", name)}
	case path == "":
		return Skill{}, &InvalidSkillError{Reason: "path cannot be empty"}
	case !filepath.IsAbs(path):
		return Skill{}, &InvalidSkillError{Reason: fmt.Sprintf("path %q is not absolute", path)}
	case sizeBytes < 0:
		return Skill{}, &InvalidSkillError{Reason: fmt.Sprintf("size cannot be negative (%d)", sizeBytes)}
	case fileCount < 0:
		return Skill{}, &InvalidSkillError{Reason: fmt.Sprintf("file count cannot be negative (%d)", fileCount)}
	}

	return Skill{
		Name:      name,
		Path:      path,
		SizeBytes: sizeBytes,
		FileCount: fileCount,
	}, nil
}

// String returns a short human-readable summary.
func (s Skill) String() string {
	return fmt.Sprintf("%s (%d files, %d bytes)", s.Name, s.FileCount, s.SizeBytes)
}
