// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package nameproc

import (
	"sort"
	"strings"

	"github.com/openaleph/openaleph-search/internal/schema"
)

const (
	minKeyLen  = 5
	minPartLen = 2
)

// NameKeys builds the name_keys representation: for each name, ASCII-fold
// its tokens, sort them, and concatenate without separators; keys shorter
// than 5 characters are dropped (§4.1 "name_keys", Testable Property 4).
func NameKeys(s *schema.Schema, names []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range names {
		tokens := Tokenize(s, name)
		folded := make([]string, 0, len(tokens))
		for _, t := range tokens {
			folded = append(folded, asciiFold(t))
		}
		sort.Strings(folded)
		key := strings.Join(folded, "")
		if len(key) < minKeyLen || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

// NameParts builds the name_parts representation: every token of length >=2,
// plus its ASCII-folded variant when that differs (§4.1 "name_parts").
func NameParts(s *schema.Schema, names []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if len(p) < minPartLen || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}
	for _, name := range names {
		for _, t := range Tokenize(s, name) {
			add(t)
			if folded := asciiFold(t); folded != t {
				add(folded)
			}
		}
	}
	return out
}
