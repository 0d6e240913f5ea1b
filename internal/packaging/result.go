// SPDX-License-Identifier: MPL-2.0

package packaging

import (
	"fmt"
	"time"
)

// Status tracks a skill through the packaging pipeline. A skill only moves
// forward: Pending → Validating → Archiving → {Succeeded | Failed}. Skills
// never reached because the invocation was canceled end as Skipped.
type Status int

const (
	// StatusPending means the skill has not been processed yet.
	StatusPending Status = iota
	// StatusValidating means the skill path is being containment-checked.
	StatusValidating
	// StatusArchiving means the archive is being written.
	StatusArchiving
	// StatusSucceeded means the archive was built and verified.
	StatusSucceeded
	// StatusFailed means validation or archiving failed for this skill.
	StatusFailed
	// StatusSkipped means the invocation was canceled before this skill ran.
	StatusSkipped
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusValidating:
		return "validating"
	case StatusArchiving:
		return "archiving"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome records the result of one packaging attempt for one skill.
type Outcome struct {
	// SkillName is the skill the outcome belongs to.
	SkillName string
	// Status is the terminal state the skill reached.
	Status Status
	// ArchivePath is the absolute path of the built archive (success only).
	ArchivePath string
	// SizeBytes is the archive size. Populated when detail is requested.
	SizeBytes int64
	// Duration is the per-skill elapsed time. Populated when detail is requested.
	Duration time.Duration
	// Reason is a stable, kind-tagged description of the failure (failure only).
	// It never exposes resolved internal paths.
	Reason string
	// Warnings lists non-fatal issues, such as skipped symlinks.
	Warnings []string
}

// Result aggregates the outcomes of one packaging invocation.
//
// Invariant: len(Successes) + len(Failures) + len(Skipped) == TotalSkills,
// and every skill matched by the pattern appears in exactly one list.
type Result struct {
	// Successes are skills that were archived and verified, sorted by name.
	Successes []Outcome
	// Failures are skills whose validation or archiving failed, sorted by name.
	Failures []Outcome
	// Skipped are skills left unprocessed by cancellation, sorted by name.
	Skipped []Outcome
	// TotalSkills is the number of skills matched by the pattern.
	TotalSkills int
	// TotalBytes is the combined size of all archives written.
	TotalBytes int64
	// Duration is the elapsed time for the whole invocation.
	Duration time.Duration
}

// SuccessCount returns the number of successfully packaged skills.
func (r *Result) SuccessCount() int { return len(r.Successes) }

// FailureCount returns the number of failed packaging attempts.
func (r *Result) FailureCount() int { return len(r.Failures) }

// SkippedCount returns the number of skills left unprocessed.
func (r *Result) SkippedCount() int { return len(r.Skipped) }

// AllSucceeded reports whether every matched skill was packaged.
func (r *Result) AllSucceeded() bool {
	return len(r.Failures) == 0 && len(r.Skipped) == 0 && len(r.Successes) > 0
}

// AnySucceeded reports whether at least one skill was packaged.
func (r *Result) AnySucceeded() bool { return len(r.Successes) > 0 }

// String returns a short human-readable summary.
func (r *Result) String() string {
	status := "failed"
	switch {
	case r.AllSucceeded():
		status = "success"
	case r.AnySucceeded():
		status = "partial"
	}
	return fmt.Sprintf("PackagingResult: %s | %d/%d packaged | %d bytes | %s",
		status, r.SuccessCount(), r.TotalSkills, r.TotalBytes, r.Duration)
}
