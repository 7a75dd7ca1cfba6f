// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

// Package auth models the caller's authorization scope (§6 "Authorization
// object").
package auth

import "strconv"

// Authorization narrows a search to the datasets/collections a caller may
// see. A nil *Authorization means authorization is disabled for the
// request (§6 "absent auth disables authorization (default)").
type Authorization struct {
	IsAdmin       bool
	Datasets      map[string]bool
	CollectionIDs map[int]bool
}

// New builds an Authorization from explicit sets. A nil set means "no
// restriction on this dimension", distinct from an empty, non-nil set
// which means "nothing is permitted".
func New(isAdmin bool, datasets []string, collectionIDs []int) *Authorization {
	a := &Authorization{IsAdmin: isAdmin}
	if datasets != nil {
		a.Datasets = toSet(datasets)
	}
	if collectionIDs != nil {
		a.CollectionIDs = make(map[int]bool, len(collectionIDs))
		for _, id := range collectionIDs {
			a.CollectionIDs[id] = true
		}
	}
	return a
}

func toSet(values []string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}

// Field returns the group field authorization scopes on, "dataset" unless
// OpenAleph collection-scoping is active (§3 "Routing key is the dataset
// (or collection_id under OpenAleph mode)").
func (a *Authorization) Field(openAlephMode bool) string {
	if openAlephMode {
		return "collection_id"
	}
	return "dataset"
}

// AllowedValues returns the caller's permitted values for the
// authorization field, or nil if the caller is unrestricted (admin, or no
// Authorization at all).
func (a *Authorization) AllowedValues(openAlephMode bool) []string {
	if a == nil || a.IsAdmin {
		return nil
	}
	if openAlephMode {
		if a.CollectionIDs == nil {
			return nil
		}
		out := make([]string, 0, len(a.CollectionIDs))
		for id := range a.CollectionIDs {
			out = append(out, strconv.Itoa(id))
		}
		return out
	}
	if a.Datasets == nil {
		return nil
	}
	out := make([]string, 0, len(a.Datasets))
	for d := range a.Datasets {
		out = append(out, d)
	}
	return out
}

// Enabled reports whether a is non-nil, i.e. whether the caller presented
// any authorization context at all.
func (a *Authorization) Enabled() bool {
	return a != nil
}

// Required is the error kind 2 condition of §7: search_auth=true with no
// auth object at all.
type Required struct{}

func (Required) Error() string {
	return "search authorization is required but no authorization context was provided"
}
