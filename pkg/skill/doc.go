// SPDX-License-Identifier: MPL-2.0

// Package skill defines the Skill value type and name matching.
//
// A skill is a named directory that skillex can discover and package into
// a distributable ZIP archive. This package holds the shared data model:
//
//   - [Skill]: immutable metadata about a discovered skill directory
//   - [Match]: case-insensitive substring filtering over skill names
//
// Matching semantics live here and nowhere else: every layer that filters
// skills by name goes through [Match] so list and zip behavior stay
// consistent.
package skill
