// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

// Package nameproc produces the multiple name representations the search
// core uses for matching and for index-time copy_to wiring (§4.1).
package nameproc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Preprocess applies unicode NFC normalization, lowercasing and whitespace
// collapsing (§4.1 "preprocess").
func Preprocess(name string) string {
	name = norm.NFC.String(name)
	name = strings.ToLower(name)
	name = whitespaceRun.ReplaceAllString(strings.TrimSpace(name), " ")
	return name
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// splitWords segments a preprocessed name into tokens on Unicode word
// boundaries (letters and digits form tokens; everything else separates
// them). This mirrors ICU's default word-break behavior closely enough for
// the token-level operations below, without requiring an ICU binding.
func splitWords(name string) []string {
	return wordPattern.FindAllString(name, -1)
}

// asciiFold strips combining marks after Unicode decomposition, collapsing
// diacritics to their base Latin letters (e.g. "Жусупов" stays as-is since
// Cyrillic has no Latin decomposition, but "josé" becomes "jose"). Used by
// name_keys and name_parts to produce ASCII-foldable variants (§4.1,
// Testable Property 4).
func asciiFold(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// isASCII reports whether every rune in s is in the basic Latin block.
func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
