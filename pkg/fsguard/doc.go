// SPDX-License-Identifier: MPL-2.0

// Package fsguard validates that filesystem paths stay inside an allowed
// base directory.
//
// Every path the packaging engine derives from user-controlled input (skill
// names, patterns, output targets) passes through [Validate] before it is
// used. Validation canonicalizes both the candidate and the base (resolving
// ".", "..", and symlinks) and succeeds only when the canonical candidate is
// the base itself or a descendant of it.
//
// Failures are reported as [SecurityViolationError], which keeps resolved
// internal paths out of the user-facing message; only the raw offending
// input appears there.
package fsguard
