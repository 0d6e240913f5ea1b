// SPDX-License-Identifier: MPL-2.0

// Package discovery enumerates skill directories under a skills root.
//
// Only immediate children of the root are considered; regular files and
// hidden entries are excluded. A missing root is not an error; it simply
// yields zero skills, and the caller decides whether that deserves a
// user-facing warning.
//
// Results are cached for the lifetime of one Discovery instance, so repeated
// calls within a single invocation return the same snapshot. A new process
// run always re-scans.
package discovery
