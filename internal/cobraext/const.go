// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cobraext

// Flag names and descriptions shared across CLI commands.
const (
	VerboseFlagName        = "verbose"
	VerboseFlagDescription = "verbose mode"

	ArgsFlagName        = "args"
	ArgsFlagDescription = "URL-style query arguments (repeatable, e.g. --args filter:schema=Person)"

	InputFlagName        = "input"
	InputFlagDescription = "path to the input file, or \"-\" for stdin"

	DatasetFlagName        = "dataset"
	DatasetFlagDescription = "dataset the entities belong to"
)
