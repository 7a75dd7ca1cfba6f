// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cobraext

import (
	"github.com/spf13/cobra"
)

// Command wraps a cobra.Command, the shape every setupXCommand() in cmd/
// returns.
type Command struct {
	*cobra.Command
}

// NewCommand wraps cmd as a Command.
func NewCommand(cmd *cobra.Command) *Command {
	return &Command{Command: cmd}
}

// Name returns the command's registered name.
func (c *Command) Name() string {
	return c.Command.Use
}
