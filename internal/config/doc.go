// SPDX-License-Identifier: MPL-2.0

// Package config resolves where skills are read from and where archives are
// written.
//
// Resolution order, lowest to highest precedence:
//
//  1. Built-in defaults: ~/.claude/skills for the skills directory and
//     $DC/skills for the output directory (when $DC is set)
//  2. skillex.toml in the platform config directory or the current directory
//  3. SKILLEX_SKILLS_DIR / SKILLEX_OUTPUT_DIR environment variables
//
// The packaging engine never reads configuration itself: it consumes an
// [EngineConfig] of two pre-resolved absolute directories produced by
// [Config.Engine], and that pair is immutable for one invocation.
package config
