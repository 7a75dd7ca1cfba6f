// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

// Package params parses the URL-style query grammar (§4.3) into a typed
// View. The entry point accepts an ordered (key, value) pair list,
// equivalently a URL query string, matching §2 item 5.
package params

import (
	"fmt"
	"net/url"
	"strings"
)

// KV is one (key, value) pair from the query grammar. Repetition is
// meaningful: "filter:schema=Person&filter:schema=Company" produces two
// KVs with the same Key.
type KV struct {
	Key   string
	Value string
}

// ParseQueryString decodes a URL query string into an ordered KV list,
// preserving repetition and the relative order Go's net/url reconstructs
// (stable per key, keys visited in the order url.Values iterates them
// after a deterministic sort, since raw string order is not preserved by
// net/url).
func ParseQueryString(raw string) ([]KV, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing query string: %w", err)
	}
	return FromValues(values), nil
}

// FromValues flattens url.Values into an ordered KV list with keys sorted
// for determinism (Testable Property 8 "byte-identical modulo map key
// ordering" depends on a stable traversal order upstream of it).
func FromValues(values url.Values) []KV {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sortStrings(keys)

	var out []KV
	for _, k := range keys {
		for _, v := range values[k] {
			out = append(out, KV{Key: k, Value: v})
		}
	}
	return out
}

// ToQueryString renders an ordered KV list back into a URL query string,
// the Unparse target used by the round-trip test (Testable Property 7).
func ToQueryString(pairs []KV) string {
	var b strings.Builder
	for i, kv := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
