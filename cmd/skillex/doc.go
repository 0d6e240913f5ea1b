// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for skillex.
//
// This package implements the Cobra command hierarchy for the skillex CLI,
// including the root command and the subcommands for packaging skill
// directories into archives and listing discovered skills.
package cmd
