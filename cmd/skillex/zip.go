// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"skillex-cli/internal/config"
	"skillex-cli/internal/issue"
	"skillex-cli/internal/packaging"
	"skillex-cli/pkg/types"

	"github.com/spf13/cobra"
)

// zipWorkers bounds concurrent archive builds (0 or 1 means sequential)
var zipWorkers int

// zipCmd packages skill directories into zip archives
var zipCmd = &cobra.Command{
	Use:   "zip [pattern]",
	Short: "Package skills into zip archives",
	Long: `Package skill directories into verified zip archives.

Discovers skills under the skills root, filters them by a case-insensitive
substring pattern, and writes one <skill>.zip per match to the output
directory. Skills that fail validation or archiving do not stop the rest
of the run.

Exit codes:
  0  every selected skill was packaged, or no skills matched
  1  every selected skill failed, or the run could not start
  2  some skills were packaged and some failed

Examples:
  skillex zip                Package every skill
  skillex zip search         Package skills whose name contains "search"
  skillex zip -v             Show per-skill size and timing detail
  skillex zip --workers 4    Build up to 4 archives concurrently`,
	Args: cobra.MaximumNArgs(1),
	RunE: runZip,
}

func init() {
	zipCmd.Flags().IntVar(&zipWorkers, "workers", 0, "maximum concurrent archive builds (default sequential)")
}

func runZip(cmd *cobra.Command, args []string) error {
	pattern := ""
	if len(args) > 0 {
		pattern = args[0]
	}

	eng, err := resolveEngineConfig()
	if err != nil {
		return err
	}

	svc := packaging.NewService(eng)
	result, err := svc.PackageByPattern(cmd.Context(), pattern, packaging.Options{
		Detail:  verbose,
		Workers: zipWorkers,
	})
	if err != nil {
		return &ExitError{Code: types.ExitFailure, Err: err}
	}

	if result.TotalSkills == 0 {
		renderNoMatches(pattern, eng.SkillsRoot)
		return nil
	}

	renderSuccesses(os.Stdout, result.Successes, verbose)
	if result.FailureCount() > 0 || result.SkippedCount() > 0 {
		renderFailures(os.Stderr, result.Failures)
		renderFailures(os.Stderr, result.Skipped)
	}
	renderSummary(os.Stdout, result)

	return zipExitError(result)
}

// zipExitError maps an aggregated packaging result to the command's exit
// contract. A run canceled before any skill was packaged is reported as
// canceled, not as failed; skipped skills are not failures.
func zipExitError(result *packaging.Result) error {
	switch {
	case result.AllSucceeded():
		return nil
	case result.AnySucceeded():
		return &ExitError{
			Code: types.ExitPartial,
			Err:  fmt.Errorf("packaged %d of %d skills", result.SuccessCount(), result.TotalSkills),
		}
	case result.SkippedCount() == result.TotalSkills:
		return &ExitError{
			Code: types.ExitFailure,
			Err:  fmt.Errorf("canceled before any of the %d selected skills were packaged", result.TotalSkills),
		}
	default:
		rendered, _ := issue.Get(issue.ArchiveFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return &ExitError{
			Code: types.ExitFailure,
			Err:  fmt.Errorf("all %d selected skills failed to package", result.TotalSkills),
		}
	}
}

// resolveEngineConfig loads the configuration and resolves the effective
// skills root and output directory. Failures render an issue card and map
// to exit code 1.
func resolveEngineConfig() (config.EngineConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return config.EngineConfig{}, &ExitError{Code: types.ExitFailure, Err: err}
	}

	eng, err := cfg.Engine()
	if err != nil {
		if errors.Is(err, config.ErrConfiguration) {
			rendered, _ := issue.Get(issue.OutputDirUnsetId).Render("dark")
			fmt.Fprint(os.Stderr, rendered)
		}
		return config.EngineConfig{}, &ExitError{Code: types.ExitFailure, Err: err}
	}
	return eng, nil
}

// renderNoMatches explains an empty selection. An empty selection is not an
// error, so callers still exit 0.
func renderNoMatches(pattern, skillsRoot string) {
	if _, err := os.Stat(skillsRoot); os.IsNotExist(err) {
		rendered, _ := issue.Get(issue.SkillsRootNotFoundId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		fmt.Printf("%s Skills root does not exist: %s\n", infoIcon, PathStyle.Render(skillsRoot))
		return
	}
	if pattern != "" {
		rendered, _ := issue.Get(issue.NoSkillsMatchedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		fmt.Printf("%s No skills matching %q in %s\n", infoIcon, pattern, PathStyle.Render(skillsRoot))
		return
	}
	fmt.Printf("%s No skills found in %s\n", infoIcon, PathStyle.Render(skillsRoot))
}
