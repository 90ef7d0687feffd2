package models

import "sort"

// maxSuggestions bounds how many near-miss model names are returned for an
// unrecognized model identifier.
const maxSuggestions = 3

// Suggest returns up to three known model ids or aliases closest to the
// given (invalid) name by Levenshtein distance, ordered nearest first.
// Ties break on registry order.
func Suggest(name string) []string {
	type candidate struct {
		value    string
		distance int
	}

	candidates := make([]candidate, 0, len(registry)*2)

	for i := range registry {
		candidates = append(candidates, candidate{
			value:    registry[i].ID,
			distance: levenshteinDistance(name, registry[i].ID),
		})

		for _, alias := range registry[i].Aliases {
			candidates = append(candidates, candidate{
				value:    alias,
				distance: levenshteinDistance(name, alias),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	limit := maxSuggestions
	if len(candidates) < limit {
		limit = len(candidates)
	}

	out := make([]string, 0, limit)
	for _, c := range candidates[:limit] {
		out = append(out, c.value)
	}

	return out
}

// levenshteinDistance calculates the edit distance between two strings.
// Used for fuzzy-matching an unrecognized model name against the catalog.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	rows := len(r1) + 1
	cols := len(r2) + 1

	dist := make([][]int, rows)
	for i := range dist {
		dist[i] = make([]int, cols)
		dist[i][0] = i
	}

	for j := 0; j < cols; j++ {
		dist[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			deletion := dist[i-1][j] + 1
			insertion := dist[i][j-1] + 1
			substitution := dist[i-1][j-1] + cost

			dist[i][j] = min(deletion, insertion, substitution)
		}
	}

	return dist[rows-1][cols-1]
}
