// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"skillex-cli/internal/config"
	"skillex-cli/internal/testutil"
)

func newTestDiscovery(t *testing.T) (*Discovery, string) {
	t.Helper()
	root := t.TempDir()
	d := New(config.EngineConfig{SkillsRoot: root, OutputRoot: t.TempDir()})
	return d, root
}

func TestDiscoverAll(t *testing.T) {
	d, root := newTestDiscovery(t)

	testutil.MustMkdirAll(t, filepath.Join(root, "web-search", "scripts"))
	testutil.MustWriteFile(t, filepath.Join(root, "web-search", "SKILL.md"), []byte("# doc"))
	testutil.MustWriteFile(t, filepath.Join(root, "web-search", "scripts", "run.sh"), []byte("echo"))
	testutil.MustMkdirAll(t, filepath.Join(root, "pdf-tools"))

	skills, err := d.DiscoverAll()
	if err != nil {
		t.Fatalf("DiscoverAll() failed: %v", err)
	}
	if len(skills) != 2 {
		t.Fatalf("DiscoverAll() found %d skills, want 2: %v", len(skills), skills)
	}

	byName := make(map[string]int)
	for i, sk := range skills {
		byName[sk.Name] = i
		if !filepath.IsAbs(sk.Path) {
			t.Errorf("skill %q path %q is not absolute", sk.Name, sk.Path)
		}
	}

	ws := skills[byName["web-search"]]
	if ws.FileCount != 2 {
		t.Errorf("web-search FileCount = %d, want 2", ws.FileCount)
	}
	if ws.SizeBytes != int64(len("# doc")+len("echo")) {
		t.Errorf("web-search SizeBytes = %d, want %d", ws.SizeBytes, len("# doc")+len("echo"))
	}

	pdf := skills[byName["pdf-tools"]]
	if pdf.FileCount != 0 || pdf.SizeBytes != 0 {
		t.Errorf("pdf-tools stats = (%d, %d), want (0, 0)", pdf.SizeBytes, pdf.FileCount)
	}
}

func TestDiscoverAllSkipsHiddenAndFiles(t *testing.T) {
	d, root := newTestDiscovery(t)

	testutil.MustMkdirAll(t, filepath.Join(root, "visible"))
	testutil.MustMkdirAll(t, filepath.Join(root, ".hidden"))
	testutil.MustWriteFile(t, filepath.Join(root, "stray-file.txt"), []byte("not a skill"))

	skills, err := d.DiscoverAll()
	if err != nil {
		t.Fatalf("DiscoverAll() failed: %v", err)
	}
	if len(skills) != 1 || skills[0].Name != "visible" {
		t.Errorf("DiscoverAll() = %v, want only %q", skills, "visible")
	}
}

func TestDiscoverAllMissingRoot(t *testing.T) {
	d := New(config.EngineConfig{
		SkillsRoot: filepath.Join(t.TempDir(), "does-not-exist"),
		OutputRoot: t.TempDir(),
	})

	skills, err := d.DiscoverAll()
	if err != nil {
		t.Fatalf("DiscoverAll() on a missing root failed: %v", err)
	}
	if len(skills) != 0 {
		t.Errorf("DiscoverAll() = %v, want empty", skills)
	}
}

func TestDiscoverAllCaches(t *testing.T) {
	d, root := newTestDiscovery(t)
	testutil.MustMkdirAll(t, filepath.Join(root, "first"))

	skills, err := d.DiscoverAll()
	if err != nil {
		t.Fatalf("DiscoverAll() failed: %v", err)
	}
	if len(skills) != 1 {
		t.Fatalf("DiscoverAll() found %d skills, want 1", len(skills))
	}

	// A skill added after the first scan is invisible until the cache clears.
	testutil.MustMkdirAll(t, filepath.Join(root, "second"))

	skills, err = d.DiscoverAll()
	if err != nil {
		t.Fatalf("cached DiscoverAll() failed: %v", err)
	}
	if len(skills) != 1 {
		t.Errorf("cached DiscoverAll() found %d skills, want 1", len(skills))
	}

	d.ClearCache()
	skills, err = d.DiscoverAll()
	if err != nil {
		t.Fatalf("DiscoverAll() after ClearCache failed: %v", err)
	}
	if len(skills) != 2 {
		t.Errorf("DiscoverAll() after ClearCache found %d skills, want 2", len(skills))
	}
}

func TestMeasureSkipsNonRegular(t *testing.T) {
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "a.txt"), []byte("12345"))
	testutil.MustMkdirAll(t, filepath.Join(dir, "sub"))
	testutil.MustWriteFile(t, filepath.Join(dir, "sub", "b.txt"), []byte("678"))
	if err := os.Symlink(filepath.Join(dir, "a.txt"), filepath.Join(dir, "link")); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	size, count := measure(dir)
	if count != 2 {
		t.Errorf("measure() count = %d, want 2 (symlink excluded)", count)
	}
	if size != 8 {
		t.Errorf("measure() size = %d, want 8", size)
	}
}
