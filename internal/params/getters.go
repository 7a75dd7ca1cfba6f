// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package params

import (
	"strconv"
	"strings"
)

// bag is the intermediate, still-stringly-typed accumulation of raw values
// keyed by the exact grammar key, built once from the KV list before the
// typed getters below convert individual values (§9 "a small set of getter
// combinators").
type bag map[string][]string

func newBag(pairs []KV) bag {
	b := make(bag, len(pairs))
	for _, kv := range pairs {
		b[kv.Key] = append(b[kv.Key], kv.Value)
	}
	return b
}

func (b bag) first(key string) (string, bool) {
	vs, ok := b[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// getString returns the first value for key, or "" if absent.
func (b bag) getString(key string) string {
	v, _ := b.first(key)
	return v
}

// getInt parses the first value for key as an integer, or returns
// (def, nil) if the key is absent. Unknown keys are ignored elsewhere;
// this only fires for keys the caller already knows are meant to be
// integers.
func (b bag) getInt(key string, def int) (int, error) {
	v, ok := b.first(key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, paramErrorf(key, "expected an integer, got %q", v)
	}
	return n, nil
}

// getOptionalInt is like getInt but returns nil rather than a default when
// the key is absent, for fields where "unset" and "zero" must be
// distinguishable (e.g. facet_size).
func (b bag) getOptionalInt(key string) (*int, error) {
	v, ok := b.first(key)
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil, paramErrorf(key, "expected an integer, got %q", v)
	}
	return &n, nil
}

// getBool accepts true/false/1/0 (§4.3 "Booleans accept true/false/1/0").
func (b bag) getBool(key string, def bool) (bool, error) {
	v, ok := b.first(key)
	if !ok {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, paramErrorf(key, "expected a boolean, got %q", v)
	}
}

// getList returns every value recorded for key, in encounter order.
func (b bag) getList(key string) []string {
	return append([]string{}, b[key]...)
}

// prefixedGroup holds the values of keys sharing a "<prefix>:<suffix>"
// shape, grouped by suffix — used for "filter:<field>", "facet_size:<field>"
// and the like (§9 "get_prefixed").
type prefixedGroup map[string][]string

// getPrefixed collects every key of the form "<prefix>:<suffix>" (a single
// colon-delimited suffix) into a map from suffix to its values.
func (b bag) getPrefixed(prefix string) prefixedGroup {
	out := prefixedGroup{}
	want := prefix + ":"
	for key, values := range b {
		if !strings.HasPrefix(key, want) {
			continue
		}
		suffix := strings.TrimPrefix(key, want)
		out[suffix] = append(out[suffix], values...)
	}
	return out
}
