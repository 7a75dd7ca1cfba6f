// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package nameproc

// DefaultPickLimit is the default number of names MatchQuery construction
// uses from an entity's full name list (§4.1 "pick_names", §4.5).
const DefaultPickLimit = 5

// PickNames selects at most limit names out of names: first the centroid
// (the name with the smallest total Levenshtein distance to every other
// name in the set), then, for each further slot, whichever remaining
// candidate maximizes the sum of distances to the names already picked
// (§4.1 "pick_names", Testable Property 5).
func PickNames(names []string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	uniq := dedupe(names)
	if len(uniq) <= limit {
		return uniq
	}

	picked := []string{centroid(uniq)}
	remaining := removeOne(uniq, picked[0])

	for len(picked) < limit && len(remaining) > 0 {
		bestIdx, bestScore := -1, -1
		for idx, cand := range remaining {
			score := 0
			for _, p := range picked {
				score += Levenshtein(cand, p)
			}
			if score > bestScore {
				bestScore, bestIdx = score, idx
			}
		}
		picked = append(picked, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return picked
}

// centroid returns the name with the smallest sum of Levenshtein distances
// to every other name in the set — the single most representative name.
func centroid(names []string) string {
	bestIdx, bestScore := 0, -1
	for i, a := range names {
		score := 0
		for j, b := range names {
			if i == j {
				continue
			}
			score += Levenshtein(a, b)
		}
		if bestScore == -1 || score < bestScore {
			bestScore, bestIdx = score, i
		}
	}
	return names[bestIdx]
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func removeOne(names []string, value string) []string {
	out := make([]string, 0, len(names)-1)
	removed := false
	for _, n := range names {
		if !removed && n == value {
			removed = true
			continue
		}
		out = append(out, n)
	}
	return out
}
