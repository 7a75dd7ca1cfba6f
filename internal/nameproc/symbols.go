// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package nameproc

import (
	"fmt"
	"strings"

	"github.com/openaleph/openaleph-search/internal/schema"
)

// SymbolDictionary resolves a canonicalized token to a cross-alphabet name
// symbol id. The real dictionary (Rigour Names) is externally defined and
// versioned outside this module (§4.1 "symbols", §9 Open Questions); the
// core only consumes it through this interface. DefaultSymbolDictionary
// provides a transliteration-based fallback so the pipeline works without
// the external data file.
type SymbolDictionary interface {
	// Lookup returns the symbol id for a canonicalized token, and whether
	// the token is known to the dictionary at all.
	Lookup(token string) (id string, ok bool)
}

// transliterationTable maps common non-Latin letters to a Latin
// approximation, letting cross-alphabet spellings of the same name
// canonicalize to the same token (§4.1 "Cross-alphabet synonyms collapse to
// the same id", Testable Property A).
var transliterationTable = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "i", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "iu", 'я': "ia",
}

func transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if repl, ok := transliterationTable[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// defaultSymbolDictionary canonicalizes every token through transliteration
// and ASCII-folding and uses the canonical spelling itself as the symbol
// id, so any two spellings (Latin or Cyrillic) of the same name collapse
// onto one id without needing a curated pairs table.
type defaultSymbolDictionary struct{}

// DefaultSymbolDictionary is the fallback SymbolDictionary used when no
// external Rigour Names data file is configured.
var DefaultSymbolDictionary SymbolDictionary = defaultSymbolDictionary{}

func (defaultSymbolDictionary) Lookup(token string) (string, bool) {
	canon := asciiFold(transliterate(token))
	if len(canon) < 3 {
		return "", false
	}
	return canon, true
}

// Symbols builds the name_symbols representation using dict, defaulting to
// DefaultSymbolDictionary (§4.1 "symbols").
func Symbols(s *schema.Schema, names []string, dict SymbolDictionary) []string {
	if dict == nil {
		dict = DefaultSymbolDictionary
	}
	seen := make(map[string]bool)
	var out []string
	for _, name := range names {
		for _, t := range Tokenize(s, name) {
			id, ok := dict.Lookup(t)
			if !ok {
				continue
			}
			symbol := fmt.Sprintf("[NAME:%s]", id)
			if seen[symbol] {
				continue
			}
			seen[symbol] = true
			out = append(out, symbol)
		}
	}
	return out
}
