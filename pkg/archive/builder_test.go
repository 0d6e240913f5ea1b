// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"skillex-cli/pkg/skill"
)

// makeSkillDir creates a skill directory with the given files (relative
// path -> content) and returns the constructed Skill.
func makeSkillDir(t *testing.T, name string, files map[string]string) skill.Skill {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, name)
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("failed to create skill dir: %v", err)
	}

	var size int64
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create parent dirs: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		size += int64(len(content))
	}

	sk, err := skill.New(name, dir, size, len(files))
	if err != nil {
		t.Fatalf("skill.New failed: %v", err)
	}
	return sk
}

// readArchive extracts every entry of the archive into a map of
// entry name -> content. Directory entries map to an empty string.
func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open archive %s: %v", path, err)
	}
	defer func() { _ = zr.Close() }()

	entries := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("failed to read entry %s: %v", f.Name, err)
		}
		entries[f.Name] = string(data)
	}
	return entries
}

func TestBuildRoundTrip(t *testing.T) {
	t.Parallel()

	sk := makeSkillDir(t, "web-search", map[string]string{
		"SKILL.md":           "# Web Search\n",
		"scripts/run.sh":     "#!/bin/sh\necho hi\n",
		"data/nested/x.json": `{"k":"v"}`,
	})
	outputRoot := t.TempDir()

	result, err := NewBuilder().Build(sk, outputRoot)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	wantPath := filepath.Join(outputRoot, "web-search.zip")
	if result.ArchivePath != wantPath {
		t.Errorf("ArchivePath = %q, want %q", result.ArchivePath, wantPath)
	}
	if result.SizeBytes <= 0 {
		t.Errorf("SizeBytes = %d, want > 0", result.SizeBytes)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}

	entries := readArchive(t, result.ArchivePath)
	wantEntries := map[string]string{
		"web-search/SKILL.md":           "# Web Search\n",
		"web-search/scripts/run.sh":     "#!/bin/sh\necho hi\n",
		"web-search/data/nested/x.json": `{"k":"v"}`,
	}
	for name, content := range wantEntries {
		got, ok := entries[name]
		if !ok {
			t.Errorf("entry %q missing from archive (have %v)", name, entryNames(entries))
			continue
		}
		if got != content {
			t.Errorf("entry %q content = %q, want %q", name, got, content)
		}
	}
	// All file entries carry the skill name prefix.
	for name := range entries {
		if !strings.HasPrefix(name, "web-search") {
			t.Errorf("entry %q lacks the skill name prefix", name)
		}
	}

	// Building the same skill again yields an identical entry set.
	again, err := NewBuilder().Build(sk, outputRoot)
	if err != nil {
		t.Fatalf("second Build failed: %v", err)
	}
	rebuilt := readArchive(t, again.ArchivePath)
	if len(rebuilt) != len(entries) {
		t.Fatalf("rebuilt entry count = %d, want %d (have %v)", len(rebuilt), len(entries), entryNames(rebuilt))
	}
	for name, content := range entries {
		if rebuilt[name] != content {
			t.Errorf("rebuilt entry %q = %q, want %q", name, rebuilt[name], content)
		}
	}
}

func entryNames(entries map[string]string) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	return names
}

func TestBuildZeroFileSkill(t *testing.T) {
	t.Parallel()

	sk := makeSkillDir(t, "empty-skill", nil)
	outputRoot := t.TempDir()

	result, err := NewBuilder().Build(sk, outputRoot)
	if err != nil {
		t.Fatalf("Build failed for zero-file skill: %v", err)
	}

	entries := readArchive(t, result.ArchivePath)
	if _, ok := entries["empty-skill/"]; !ok {
		t.Errorf("zero-file archive missing top-level folder entry, have %v", entryNames(entries))
	}
}

func TestBuildSkipsSymlinksWithWarning(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	sk := makeSkillDir(t, "linked", map[string]string{"SKILL.md": "doc"})
	if err := os.Symlink(filepath.Join(sk.Path, "SKILL.md"), filepath.Join(sk.Path, "alias.md")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}
	outputRoot := t.TempDir()

	result, err := NewBuilder().Build(sk, outputRoot)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "symlink") {
		t.Errorf("Warnings = %v, want one symlink warning", result.Warnings)
	}

	entries := readArchive(t, result.ArchivePath)
	if _, ok := entries["linked/alias.md"]; ok {
		t.Error("symlink was archived, want it skipped")
	}
	if _, ok := entries["linked/SKILL.md"]; !ok {
		t.Error("regular file missing from archive")
	}
}

func TestBuildOverwritesExistingArchive(t *testing.T) {
	t.Parallel()

	sk := makeSkillDir(t, "repeat", map[string]string{"SKILL.md": "v2"})
	outputRoot := t.TempDir()

	stale := filepath.Join(outputRoot, "repeat"+Extension)
	if err := os.WriteFile(stale, []byte("not a zip"), 0o644); err != nil {
		t.Fatalf("failed to plant stale file: %v", err)
	}

	result, err := NewBuilder().Build(sk, outputRoot)
	if err != nil {
		t.Fatalf("Build failed over an existing archive: %v", err)
	}

	entries := readArchive(t, result.ArchivePath)
	if entries["repeat/SKILL.md"] != "v2" {
		t.Errorf("archive was not replaced, entries: %v", entryNames(entries))
	}
}

func TestBuildCreatesOutputRoot(t *testing.T) {
	t.Parallel()

	sk := makeSkillDir(t, "fresh", map[string]string{"SKILL.md": "doc"})
	outputRoot := filepath.Join(t.TempDir(), "not", "yet", "created")

	result, err := NewBuilder().Build(sk, outputRoot)
	if err != nil {
		t.Fatalf("Build failed with missing output root: %v", err)
	}
	if _, err := os.Stat(result.ArchivePath); err != nil {
		t.Errorf("archive not found at %s: %v", result.ArchivePath, err)
	}
}

func TestBuildMissingSourceFails(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "gone")
	sk, err := skill.New("gone", dir, 0, 0)
	if err != nil {
		t.Fatalf("skill.New failed: %v", err)
	}
	outputRoot := t.TempDir()

	_, err = NewBuilder().Build(sk, outputRoot)
	if err == nil {
		t.Fatal("Build succeeded with a missing source directory")
	}
	if !errors.Is(err, ErrBuild) {
		t.Errorf("error does not wrap ErrBuild: %v", err)
	}

	// Failure must leave no partial archive or temp litter behind.
	leftover, globErr := filepath.Glob(filepath.Join(outputRoot, "*"))
	if globErr != nil {
		t.Fatalf("glob failed: %v", globErr)
	}
	if len(leftover) != 0 {
		t.Errorf("output root not clean after failure: %v", leftover)
	}
}

func TestVerifyArchiveDetectsCorruption(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "broken/payload.txt", Method: zip.Store})
	if err != nil {
		t.Fatalf("failed to create entry: %v", err)
	}
	if _, err := w.Write(bytes.Repeat([]byte("payload data "), 64)); err != nil {
		t.Fatalf("failed to write entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finalize zip: %v", err)
	}

	// Flip a byte inside the stored entry data, past the local file header,
	// so the recorded checksum no longer matches the content.
	data := buf.Bytes()
	data[128] ^= 0xFF

	path := filepath.Join(t.TempDir(), "corrupt.zip")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write corrupted archive: %v", err)
	}

	err = verifyArchive(path)
	if err == nil {
		t.Fatal("verifyArchive accepted a corrupted archive")
	}
	var vErr *verifyError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want a verifyError", err)
	}
	if vErr.entry != "broken/payload.txt" {
		t.Errorf("corrupt entry = %q, want %q", vErr.entry, "broken/payload.txt")
	}
}

func TestBuildFailsClosedOnCorruptArchive(t *testing.T) {
	orig := verify
	verify = func(string) error {
		return &verifyError{entry: "flaky/SKILL.md", cause: errors.New("checksum mismatch")}
	}
	defer func() { verify = orig }()

	sk := makeSkillDir(t, "flaky", map[string]string{"SKILL.md": "doc"})
	outputRoot := t.TempDir()

	_, err := NewBuilder().Build(sk, outputRoot)
	if err == nil {
		t.Fatal("Build published an archive that failed verification")
	}
	if !errors.Is(err, ErrIntegrity) {
		t.Errorf("error does not wrap ErrIntegrity: %v", err)
	}
	var integErr *IntegrityError
	if !errors.As(err, &integErr) {
		t.Fatalf("error = %v, want an IntegrityError", err)
	}
	if integErr.Entry != "flaky/SKILL.md" {
		t.Errorf("Entry = %q, want the corrupt entry name", integErr.Entry)
	}

	// The unverified temp file is removed and no archive is published.
	leftover, globErr := filepath.Glob(filepath.Join(outputRoot, "*"))
	if globErr != nil {
		t.Fatalf("glob failed: %v", globErr)
	}
	if len(leftover) != 0 {
		t.Errorf("output root not clean after integrity failure: %v", leftover)
	}
}

func TestBuildErrorChains(t *testing.T) {
	t.Parallel()

	buildErr := &BuildError{SkillName: "s", Cause: errors.New("boom")}
	if !errors.Is(buildErr, ErrBuild) {
		t.Error("BuildError does not wrap ErrBuild")
	}

	integErr := &IntegrityError{SkillName: "s", Entry: "s/f", Cause: errors.New("crc mismatch")}
	if !errors.Is(integErr, ErrIntegrity) {
		t.Error("IntegrityError does not wrap ErrIntegrity")
	}
	if !errors.Is(integErr, ErrBuild) {
		t.Error("IntegrityError does not chain to ErrBuild")
	}
	if errors.Is(buildErr, ErrIntegrity) {
		t.Error("BuildError must not satisfy ErrIntegrity")
	}
}
