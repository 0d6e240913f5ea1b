// SPDX-License-Identifier: MPL-2.0

package skill

import (
	"sort"
	"strings"
)

// Match filters skills whose name contains pattern (case-insensitive) and
// returns them sorted ascending by name. An empty pattern matches every
// skill. Matching is deliberately plain substring, with no glob or regular
// expression semantics, so user input stays inert.
//
// Match is pure: it never touches the filesystem and an empty result is a
// valid, non-error outcome. The input slice is not modified.
func Match(pattern string, skills []Skill) []Skill {
	needle := strings.ToLower(pattern)

	matched := make([]Skill, 0, len(skills))
	for _, s := range skills {
		if needle == "" || strings.Contains(strings.ToLower(s.Name), needle) {
			matched = append(matched, s)
		}
	}

	// Ordinal sort on the original names, even though matching folds case.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Name < matched[j].Name
	})

	return matched
}
