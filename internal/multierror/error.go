// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package multierror collects the non-fatal failures an ingest run
// accumulates (a rejected entity here, a dropped bulk item there) into one
// value that can be reported once at batch end instead of aborting the run
// on the first error (§7 error kind 6).
package multierror

import (
	"fmt"
	"sort"
	"strings"
)

// Error is a multi-error representation, the type of ingest.Report.Errors.
type Error []error

// Unique selects only unique
func (me Error) Unique() Error {
	// Create copy of multi error array
	errs := make(Error, len(me))
	copy(errs, me)

	// Sort them first
	sort.Slice(errs, func(i, j int) bool {
		return sort.StringsAreSorted([]string{errs[i].Error(), errs[j].Error()})
	})

	// Select unique values
	var unique []error
	encountered := map[string]struct{}{}
	for _, err := range errs {
		if _, ok := encountered[err.Error()]; !ok {
			encountered[err.Error()] = struct{}{}
			unique = append(unique, err)
		}
	}
	return unique
}

// Error combines a detailed report consisting of attached errors separated with new lines.
func (me Error) Error() string {
	if me == nil {
		return ""
	}

	strs := make([]string, len(me))
	for i, err := range me {
		strs[i] = fmt.Sprintf("[%d] %v", i, err)
	}
	return strings.Join(strs, "\n")
}

// Summary renders at most limit errors (deduplicated, one per line) plus a
// count of how many were omitted, the shape the CLI's index-entities
// command prints a Report.Errors value in without flooding a terminal on a
// run with thousands of rejected entities.
func (me Error) Summary(limit int) string {
	unique := me.Unique()
	if len(unique) == 0 {
		return ""
	}
	if limit <= 0 || limit >= len(unique) {
		return unique.Error()
	}
	shown := Error(unique[:limit]).Error()
	return fmt.Sprintf("%s\n... and %d more", shown, len(unique)-limit)
}
