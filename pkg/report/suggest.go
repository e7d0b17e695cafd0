package report

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns candidates close to input, closest first. A candidate is
// close when its edit distance is at most a third of the input length, with a
// floor of two edits. Prefix matches always qualify.
func Suggest(input string, candidates []string) []string {
	if input == "" {
		return nil
	}

	limit := len(input) / 3
	if limit < 2 {
		limit = 2
	}

	type scored struct {
		name string
		dist int
	}
	var matches []scored
	lower := strings.ToLower(input)
	for _, c := range candidates {
		if c == input {
			continue
		}
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if d <= limit || strings.HasPrefix(strings.ToLower(c), lower) {
			matches = append(matches, scored{name: c, dist: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].name < matches[j].name
	})

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// FormatSuggestions renders suggestions as a "did you mean" block, or the
// empty string when there are none.
func FormatSuggestions(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	if len(suggestions) == 1 {
		return "Did you mean " + suggestions[0] + "?"
	}
	return "Did you mean any of the following?\n  - " + strings.Join(suggestions, "\n  - ")
}
