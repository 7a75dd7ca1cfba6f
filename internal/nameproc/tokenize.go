// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package nameproc

import (
	"github.com/openaleph/openaleph-search/internal/schema"
)

// orgTypeCanonical maps common organization-type abbreviations to a
// canonical spelled-out form, so "Acme Corp" and "Acme Corporation" tokenize
// identically (§4.1 "replace organization-type words with canonical forms").
var orgTypeCanonical = map[string]string{
	"corp":    "corporation",
	"co":      "company",
	"inc":     "incorporated",
	"ltd":     "limited",
	"llc":     "limited",
	"llp":     "partnership",
	"gmbh":    "gesellschaft",
	"sa":      "sociedad",
	"spa":     "societa",
	"nv":      "vennootschap",
	"bv":      "vennootschap",
	"plc":     "company",
	"ag":      "aktiengesellschaft",
	"kg":      "kommanditgesellschaft",
	"oao":     "obshchestvo",
	"ooo":     "obshchestvo",
	"zao":     "obshchestvo",
	"pty":     "proprietary",
}

// honorifics are stripped from Person names before tokenizing (§4.1 "strip
// honorifics/prefixes").
var honorifics = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "miss": true, "mx": true,
	"dr": true, "prof": true, "sir": true, "dame": true,
}

// Tokenize segments a preprocessed name into schema-aware tokens (§4.1
// "tokenize"). Organization-family schemas get type-word canonicalization;
// Person gets honorific stripping. Any other schema just splits on word
// boundaries.
func Tokenize(s *schema.Schema, name string) []string {
	words := splitWords(Preprocess(name))

	switch {
	case s != nil && (s.IsA("Organization") || s.IsA("Company") || s.IsA("PublicBody")):
		out := make([]string, 0, len(words))
		for _, w := range words {
			if canon, ok := orgTypeCanonical[w]; ok {
				out = append(out, canon)
				continue
			}
			out = append(out, w)
		}
		return out
	case s != nil && s.IsA("Person"):
		out := make([]string, 0, len(words))
		for _, w := range words {
			if honorifics[w] {
				continue
			}
			out = append(out, w)
		}
		return out
	default:
		return words
	}
}
