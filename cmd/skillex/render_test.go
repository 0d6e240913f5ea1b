// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"

	"skillex-cli/internal/packaging"
)

func TestFormatFileSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size int64
		want string
	}{
		{0, "0 bytes"},
		{512, "512 bytes"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
	}

	for _, tt := range tests {
		if got := formatFileSize(tt.size); got != tt.want {
			t.Errorf("formatFileSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   *packaging.Result
		contains []string
	}{
		{
			name: "all succeeded",
			result: &packaging.Result{
				Successes:   []packaging.Outcome{{SkillName: "a"}, {SkillName: "b"}},
				TotalSkills: 2,
				TotalBytes:  2048,
			},
			contains: []string{"Packaged 2 skill(s)", "2.00 KB"},
		},
		{
			name: "partial",
			result: &packaging.Result{
				Successes:   []packaging.Outcome{{SkillName: "a"}},
				Failures:    []packaging.Outcome{{SkillName: "b"}},
				TotalSkills: 2,
			},
			contains: []string{"Packaged 1 of 2 skill(s)", "1 failed"},
		},
		{
			name: "partial with skipped",
			result: &packaging.Result{
				Successes:   []packaging.Outcome{{SkillName: "a"}},
				Failures:    []packaging.Outcome{{SkillName: "b"}},
				Skipped:     []packaging.Outcome{{SkillName: "c"}},
				TotalSkills: 3,
			},
			contains: []string{"Packaged 1 of 3 skill(s)", "1 failed", "1 skipped"},
		},
		{
			name: "total failure",
			result: &packaging.Result{
				Failures:    []packaging.Outcome{{SkillName: "a"}, {SkillName: "b"}},
				TotalSkills: 2,
			},
			contains: []string{"Packaged 0 of 2 skill(s)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var sb strings.Builder
			renderSummary(&sb, tt.result)
			got := sb.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("summary %q missing %q", got, want)
				}
			}
		})
	}
}

func TestRenderSuccesses(t *testing.T) {
	t.Parallel()

	outcomes := []packaging.Outcome{
		{
			SkillName:   "web-search",
			Status:      packaging.StatusSucceeded,
			ArchivePath: "/out/web-search.zip",
			SizeBytes:   4096,
			Warnings:    []string{"skipped symlink web-search/alias"},
		},
	}

	t.Run("plain", func(t *testing.T) {
		t.Parallel()
		var sb strings.Builder
		renderSuccesses(&sb, outcomes, false)
		got := sb.String()
		if !strings.Contains(got, "web-search") || !strings.Contains(got, "/out/web-search.zip") {
			t.Errorf("output %q missing skill name or archive path", got)
		}
		if strings.Contains(got, "4.00 KB") {
			t.Errorf("plain output %q should not include size detail", got)
		}
		if !strings.Contains(got, "skipped symlink") {
			t.Errorf("output %q missing warning line", got)
		}
	})

	t.Run("detail", func(t *testing.T) {
		t.Parallel()
		var sb strings.Builder
		renderSuccesses(&sb, outcomes, true)
		got := sb.String()
		if !strings.Contains(got, "4.00 KB") {
			t.Errorf("detail output %q missing archive size", got)
		}
	})
}

func TestRenderFailures(t *testing.T) {
	t.Parallel()

	outcomes := []packaging.Outcome{
		{SkillName: "broken", Status: packaging.StatusFailed, Reason: "build: archive construction failed"},
		{SkillName: "late", Status: packaging.StatusSkipped, Reason: "skipped: invocation canceled before this skill was processed"},
	}

	var sb strings.Builder
	renderFailures(&sb, outcomes)
	got := sb.String()

	for _, want := range []string{"broken", "build:", "late", "skipped:"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}
