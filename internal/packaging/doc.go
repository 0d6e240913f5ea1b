// SPDX-License-Identifier: MPL-2.0

// Package packaging orchestrates the skill packaging pipeline: census,
// pattern matching, path validation, and archive construction.
//
// The orchestrator exists to provide the bulk/partial-failure contract: a
// failure on one skill never aborts the remaining skills. Per-skill errors
// become failed [Outcome] values accumulated into an aggregate [Result];
// only configuration-level problems abort an invocation outright.
package packaging
