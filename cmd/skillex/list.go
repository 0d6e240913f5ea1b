// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"skillex-cli/internal/discovery"
	"skillex-cli/pkg/skill"

	"github.com/spf13/cobra"
)

// listCmd lists discovered skills without packaging them
var listCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List discovered skills",
	Long: `List skill directories discovered under the skills root.

Shows every immediate subdirectory of the skills root, optionally filtered
by a case-insensitive substring pattern, together with its file count and
total size on disk.

Examples:
  skillex list              List all discovered skills
  skillex list search       List skills whose name contains "search"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	pattern := ""
	if len(args) > 0 {
		pattern = args[0]
	}

	eng, err := resolveEngineConfig()
	if err != nil {
		return err
	}

	skills, err := discovery.New(eng).DiscoverAll()
	if err != nil {
		return fmt.Errorf("failed to discover skills: %w", err)
	}
	matched := skill.Match(pattern, skills)

	fmt.Println(TitleStyle.Render("Skills") + SubtitleStyle.Render(" in "+eng.SkillsRoot))
	fmt.Println()

	if len(matched) == 0 {
		renderNoMatches(pattern, eng.SkillsRoot)
		return nil
	}

	for _, sk := range matched {
		fmt.Printf("%s %s %s\n", infoIcon,
			NameStyle.Render(sk.Name),
			VerboseStyle.Render(fmt.Sprintf("(%d file(s), %s)", sk.FileCount, formatFileSize(sk.SizeBytes))))
		if verbose {
			fmt.Printf("   %s\n", PathStyle.Render(sk.Path))
		}
	}

	fmt.Println()
	fmt.Fprintf(os.Stdout, "%s %d skill(s)\n", infoIcon, len(matched))
	return nil
}
