// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"skillex-cli/pkg/fsguard"
	"skillex-cli/pkg/skill"
)

// Extension is the filename extension of produced archives.
const Extension = ".zip"

// BuildResult describes a successfully built archive.
type BuildResult struct {
	// ArchivePath is the absolute path of the final archive.
	ArchivePath string
	// SizeBytes is the size of the archive file.
	SizeBytes int64
	// Warnings lists non-fatal issues encountered during the walk, such as
	// skipped symbolic links.
	Warnings []string
}

// Builder writes skill directories into compressed ZIP archives. The zero
// value is ready to use. Builder holds no mutable state; concurrent Build
// calls for different skills are safe.
type Builder struct{}

// NewBuilder creates a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build packages the skill's directory tree into outputRoot/<name>.zip.
//
// The target path is containment-validated against outputRoot, the archive
// is written to a temporary file in the same directory, verified, and
// atomically renamed into place. A pre-existing archive at the target is
// silently overwritten on success and untouched on failure.
func (b *Builder) Build(sk skill.Skill, outputRoot string) (*BuildResult, error) {
	absRoot, err := filepath.Abs(outputRoot)
	if err != nil {
		return nil, &BuildError{SkillName: sk.Name, Cause: fmt.Errorf("resolving output root: %w", err)}
	}

	// Creating the output root is idempotent; it may already exist.
	if err := os.MkdirAll(absRoot, 0o755); err != nil {
		return nil, &BuildError{SkillName: sk.Name, Cause: fmt.Errorf("creating output directory: %w", err)}
	}

	target, err := fsguard.Validate(filepath.Join(absRoot, sk.Name+Extension), absRoot)
	if err != nil {
		return nil, &BuildError{SkillName: sk.Name, Cause: err}
	}

	// The temp file lives in the output directory so the final rename stays
	// on one filesystem and therefore atomic.
	tmpFile, err := os.CreateTemp(absRoot, ".tmp_*"+Extension)
	if err != nil {
		return nil, &BuildError{SkillName: sk.Name, Cause: fmt.Errorf("creating temporary file: %w", err)}
	}
	tmpPath := tmpFile.Name()

	warnings, err := writeArchive(sk, tmpFile)
	if closeErr := tmpFile.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("closing temporary file: %w", closeErr)
	}
	if err != nil {
		_ = os.Remove(tmpPath) // Best-effort cleanup on error path
		return nil, &BuildError{SkillName: sk.Name, Cause: err}
	}

	if err := verify(tmpPath); err != nil {
		_ = os.Remove(tmpPath) // Best-effort cleanup on error path
		var entry string
		if vErr, ok := err.(*verifyError); ok {
			entry = vErr.entry
		}
		return nil, &IntegrityError{SkillName: sk.Name, Entry: entry, Cause: err}
	}

	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath) // Best-effort cleanup on error path
		return nil, &BuildError{SkillName: sk.Name, Cause: fmt.Errorf("renaming archive into place: %w", err)}
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, &BuildError{SkillName: sk.Name, Cause: fmt.Errorf("stating archive: %w", err)}
	}

	return &BuildResult{
		ArchivePath: target,
		SizeBytes:   info.Size(),
		Warnings:    warnings,
	}, nil
}

// writeArchive walks the skill directory and writes every regular file into
// the ZIP with an archive-internal path of "<name>/<relative path>". It
// returns warnings for skipped symlinks and other non-regular entries.
func writeArchive(sk skill.Skill, w io.Writer) (warnings []string, err error) {
	zw := zip.NewWriter(w)
	defer func() {
		if closeErr := zw.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("finalizing archive: %w", closeErr)
		}
	}()

	walkErr := filepath.WalkDir(sk.Path, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walking %s: %w", path, walkErr)
		}

		relPath, relErr := filepath.Rel(sk.Path, path)
		if relErr != nil {
			return fmt.Errorf("computing relative path for %s: %w", path, relErr)
		}

		// Forward slashes regardless of host path convention.
		entryName := filepath.ToSlash(filepath.Join(sk.Name, relPath))

		// Symlinks are never followed or archived.
		if d.Type()&os.ModeSymlink != 0 {
			warnings = append(warnings, fmt.Sprintf("skipped symlink %s", entryName))
			return nil
		}

		if d.IsDir() {
			// The top-level folder entry is written too, so a zero-file
			// skill still produces a valid archive.
			if relPath == "." {
				entryName = sk.Name
			}
			if _, createErr := zw.Create(entryName + "/"); createErr != nil {
				return fmt.Errorf("creating directory entry %s: %w", entryName, createErr)
			}
			return nil
		}

		if !d.Type().IsRegular() {
			warnings = append(warnings, fmt.Sprintf("skipped special file %s", entryName))
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", path, readErr)
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return fmt.Errorf("stating %s: %w", path, infoErr)
		}

		header, headerErr := zip.FileInfoHeader(info)
		if headerErr != nil {
			return fmt.Errorf("creating header for %s: %w", entryName, headerErr)
		}
		header.Name = entryName
		header.Method = zip.Deflate

		fw, createErr := zw.CreateHeader(header)
		if createErr != nil {
			return fmt.Errorf("creating entry %s: %w", entryName, createErr)
		}
		if _, writeErr := fw.Write(data); writeErr != nil {
			return fmt.Errorf("writing entry %s: %w", entryName, writeErr)
		}

		return nil
	})
	if walkErr != nil {
		return warnings, walkErr
	}

	return warnings, nil
}

// verifyError reports the first corrupt entry found during verification.
type verifyError struct {
	entry string
	cause error
}

func (e *verifyError) Error() string {
	return fmt.Sprintf("entry %q: %v", e.entry, e.cause)
}

func (e *verifyError) Unwrap() error { return e.cause }

// Swappable for tests.
var verify = verifyArchive

// verifyArchive re-opens the written archive and fully reads every entry,
// which checks each stored checksum against the recomputed content.
func verifyArchive(path string) (err error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("reopening archive: %w", err)
	}
	defer func() {
		if closeErr := zr.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for _, f := range zr.File {
		rc, openErr := f.Open()
		if openErr != nil {
			return &verifyError{entry: f.Name, cause: openErr}
		}
		_, copyErr := io.Copy(io.Discard, rc)
		closeErr := rc.Close()
		if copyErr != nil {
			return &verifyError{entry: f.Name, cause: copyErr}
		}
		if closeErr != nil {
			return &verifyError{entry: f.Name, cause: closeErr}
		}
	}

	return nil
}
