// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package params

import "fmt"

// ParamError is the sum-type "error" half of parsing (§7 error kind 1,
// §9 "return sum types: Ok(view) | ParamError(msg)"). A bad request never
// reaches the cluster.
type ParamError struct {
	Key     string
	Message string
}

func (e *ParamError) Error() string {
	if e.Key == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Message)
}

func paramErrorf(key, format string, args ...interface{}) *ParamError {
	return &ParamError{Key: key, Message: fmt.Sprintf(format, args...)}
}
