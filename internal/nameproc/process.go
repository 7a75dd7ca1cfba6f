// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package nameproc

import "github.com/openaleph/openaleph-search/internal/schema"

// Result bundles every derived name representation for one entity (§3
// "Name representations").
type Result struct {
	Names    []string // normalized keyword form of each input name
	NameKeys []string
	Parts    []string
	Phonetic []string
	Symbols  []string
}

// Process runs the full name pipeline for an entity's raw name values,
// producing the representations the mapping builder wires into
// names/name_keys/name_parts/name_phonetic/name_symbols (§3, §4.1).
func Process(s *schema.Schema, rawNames []string, dict SymbolDictionary) Result {
	normalized := make([]string, 0, len(rawNames))
	seen := make(map[string]bool)
	for _, n := range rawNames {
		p := Preprocess(n)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		normalized = append(normalized, p)
	}

	return Result{
		Names:    normalized,
		NameKeys: NameKeys(s, normalized),
		Parts:    NameParts(s, normalized),
		Phonetic: Phonetic(s, normalized),
		Symbols:  Symbols(s, normalized, dict),
	}
}
