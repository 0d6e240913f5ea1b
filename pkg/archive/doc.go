// SPDX-License-Identifier: MPL-2.0

// Package archive builds distributable ZIP archives from skill directories.
//
// Each build is atomic: the archive is written to a temporary file in the
// output directory, verified entry-by-entry against its stored checksums,
// and only then renamed over the final target path. A failed build never
// leaves a partial archive on disk, and a pre-existing archive at the target
// is untouched by a failed rebuild.
//
// Entry paths inside the archive are "<skillName>/<relative path>" with
// forward-slash separators on every platform. Symbolic links are never
// followed or archived; they are skipped and reported as warnings.
//
// [Builder] holds no mutable state, so concurrent builds for different
// skills are safe without locking.
package archive
