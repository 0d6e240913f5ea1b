// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	// Verify all IDs are unique and sequential
	ids := []Id{
		OutputDirUnsetId,
		SkillsRootNotFoundId,
		NoSkillsMatchedId,
		ConfigLoadFailedId,
		ArchiveFailedId,
		PermissionDeniedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	// Verify IDs start at 1 (iota + 1)
	if OutputDirUnsetId != 1 {
		t.Errorf("OutputDirUnsetId = %d, want 1", OutputDirUnsetId)
	}
}

func TestIssue_Id(t *testing.T) {
	issue := Get(OutputDirUnsetId)
	if issue == nil {
		t.Fatal("Get(OutputDirUnsetId) returned nil")
	}

	if issue.Id() != OutputDirUnsetId {
		t.Errorf("issue.Id() = %d, want %d", issue.Id(), OutputDirUnsetId)
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	issue := Get(OutputDirUnsetId)
	if issue == nil {
		t.Fatal("Get(OutputDirUnsetId) returned nil")
	}

	msg := issue.MarkdownMsg()
	if msg == "" {
		t.Error("MarkdownMsg() returned empty string")
	}

	// Verify it contains expected content
	if !strings.Contains(string(msg), "No output directory configured") {
		t.Error("MarkdownMsg() should contain 'No output directory configured'")
	}
}

func TestIssue_DocLinks(t *testing.T) {
	issue := Get(OutputDirUnsetId)
	if issue == nil {
		t.Fatal("Get(OutputDirUnsetId) returned nil")
	}

	// DocLinks returns a clone of the links
	links := issue.DocLinks()
	if links == nil {
		// nil is acceptable if no doc links are set
		return
	}

	// Modifying the returned slice should not affect the original
	if len(links) > 0 {
		original := links[0]
		links[0] = "modified"
		newLinks := issue.DocLinks()
		if len(newLinks) > 0 && newLinks[0] != original {
			t.Error("DocLinks() should return a clone")
		}
	}
}

func TestIssue_Render(t *testing.T) {
	// Mock the render function for testing
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		// Simple mock that just returns the input
		return in, nil
	}

	issue := Get(NoSkillsMatchedId)
	if issue == nil {
		t.Fatal("Get(NoSkillsMatchedId) returned nil")
	}

	rendered, err := issue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	if rendered == "" {
		t.Error("Render() returned empty string")
	}

	// The rendered output should contain the content
	if !strings.Contains(rendered, "skillex list") {
		t.Error("Render() output should mention 'skillex list'")
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{OutputDirUnsetId, false, "No output directory configured"},
		{SkillsRootNotFoundId, false, "No skills directory found"},
		{NoSkillsMatchedId, false, "No skills matched"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{ArchiveFailedId, false, "Archive creation failed"},
		{PermissionDeniedId, false, "Permission denied"},
		{Id(9999), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			issue := Get(tt.id)

			if tt.wantNil {
				if issue != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}

			if issue == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}

			if tt.contains != "" && !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain '%s'", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	issues := Values()

	if len(issues) == 0 {
		t.Fatal("Values() returned empty slice")
	}

	expectedCount := 6

	if len(issues) != expectedCount {
		t.Errorf("Values() returned %d issues, want %d", len(issues), expectedCount)
	}

	// Verify all issues have valid IDs
	for _, issue := range issues {
		if issue.Id() == 0 {
			t.Error("found issue with ID 0")
		}
	}
}
