// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"time"

	"skillex-cli/internal/packaging"
)

// timePrecision is the rounding applied to per-skill durations in detail output.
const timePrecision = time.Millisecond

// Icons for packaging output
var (
	successIcon = SuccessStyle.Render("✓")
	errorIcon   = ErrorStyle.Render("✗")
	warnIcon    = WarningStyle.Render("!")
	infoIcon    = SubtitleStyle.Render("•")
)

// formatFileSize formats a file size in bytes to a human-readable string
func formatFileSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(GB))
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(MB))
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}

// renderSuccesses prints one line per packaged skill. With detail enabled
// the line carries the archive size and per-skill elapsed time.
func renderSuccesses(w io.Writer, outcomes []packaging.Outcome, detail bool) {
	for _, o := range outcomes {
		if detail {
			fmt.Fprintf(w, "%s %s %s (%s, %s)\n", successIcon,
				NameStyle.Render(o.SkillName),
				PathStyle.Render(o.ArchivePath),
				formatFileSize(o.SizeBytes),
				o.Duration.Round(timePrecision))
		} else {
			fmt.Fprintf(w, "%s %s %s\n", successIcon,
				NameStyle.Render(o.SkillName),
				PathStyle.Render(o.ArchivePath))
		}
		for _, warning := range o.Warnings {
			fmt.Fprintf(w, "  %s %s\n", warnIcon, VerboseStyle.Render(warning))
		}
	}
}

// renderFailures prints failed and skipped skills with their reasons.
func renderFailures(w io.Writer, outcomes []packaging.Outcome) {
	for _, o := range outcomes {
		icon := errorIcon
		if o.Status == packaging.StatusSkipped {
			icon = warnIcon
		}
		fmt.Fprintf(w, "%s %s: %s\n", icon, NameStyle.Render(o.SkillName), o.Reason)
	}
}

// renderSummary prints the aggregate line for one packaging invocation.
func renderSummary(w io.Writer, result *packaging.Result) {
	fmt.Fprintln(w)
	switch {
	case result.AllSucceeded():
		fmt.Fprintf(w, "%s Packaged %d skill(s), %s total\n", successIcon,
			result.SuccessCount(), formatFileSize(result.TotalBytes))
	case result.AnySucceeded():
		fmt.Fprintf(w, "%s Packaged %d of %d skill(s): %d failed",
			warnIcon, result.SuccessCount(), result.TotalSkills, result.FailureCount())
		if result.SkippedCount() > 0 {
			fmt.Fprintf(w, ", %d skipped", result.SkippedCount())
		}
		fmt.Fprintln(w)
	default:
		fmt.Fprintf(w, "%s Packaged 0 of %d skill(s)\n", errorIcon, result.TotalSkills)
	}
}
