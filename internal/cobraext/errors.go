// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cobraext

import "fmt"

// FlagParsingError wraps the original error with the flag it came from,
// the shape every setupXCommand() returns when cmd.Flags().Get* fails.
func FlagParsingError(err error, flagName string) error {
	return fmt.Errorf("error parsing --%s flag: %w", flagName, err)
}

// MissingFlagError reports a required flag left empty, the §7 error kind 1
// condition at the CLI boundary: a malformed request never reaches the
// cluster, it is rejected before a transport call is attempted.
func MissingFlagError(flagName string) error {
	return fmt.Errorf("--%s flag is required", flagName)
}
