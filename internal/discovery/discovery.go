// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"skillex-cli/internal/config"
	"skillex-cli/pkg/skill"

	"github.com/charmbracelet/log"
)

// Discovery finds skills under a configured skills root.
type Discovery struct {
	cfg config.EngineConfig

	// cache holds the snapshot from the first scan. Nil means not yet scanned.
	cache []skill.Skill
}

// New creates a new Discovery instance for one invocation.
func New(cfg config.EngineConfig) *Discovery {
	return &Discovery{cfg: cfg}
}

// DiscoverAll returns every skill directly under the skills root.
//
// The first call scans the filesystem; subsequent calls on the same instance
// return the cached snapshot. A nonexistent root yields an empty slice and
// no error.
func (d *Discovery) DiscoverAll() ([]skill.Skill, error) {
	if d.cache != nil {
		return d.cache, nil
	}

	skills, err := scan(d.cfg.SkillsRoot)
	if err != nil {
		return nil, err
	}

	d.cache = skills
	return d.cache, nil
}

// ClearCache drops the cached snapshot so the next DiscoverAll re-scans.
// This is primarily for testing.
func (d *Discovery) ClearCache() {
	d.cache = nil
}

// scan lists the immediate sub-directories of root and computes per-skill
// statistics with one recursive walk each.
func scan(root string) ([]skill.Skill, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			// Zero skills, not an error condition.
			return []skill.Skill{}, nil
		}
		return nil, err
	}

	skills := make([]skill.Skill, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, skill.HiddenPrefix) {
			continue
		}

		path := filepath.Join(root, name)
		sizeBytes, fileCount := measure(path)

		sk, err := skill.New(name, path, sizeBytes, fileCount)
		if err != nil {
			// A directory that cannot form a valid skill is skipped, not fatal.
			log.Debug("skipping invalid skill directory", "name", name, "err", err)
			continue
		}

		log.Debug("discovered skill", "name", name, "files", fileCount, "bytes", sizeBytes)
		skills = append(skills, sk)
	}

	return skills, nil
}

// measure walks dir recursively, summing regular-file sizes and counts.
// Symlinks are not followed and unreadable entries are skipped; a partially
// unreadable skill still gets best-effort statistics.
func measure(dir string) (sizeBytes int64, fileCount int) {
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil //nolint:nilerr // Intentionally skip errors to continue walking
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Same policy for stat races
		}
		sizeBytes += info.Size()
		fileCount++
		return nil
	})
	return sizeBytes, fileCount
}
