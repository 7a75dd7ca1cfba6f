// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package transport

import (
	"encoding/json"
	"fmt"
)

// ErrKind distinguishes a connection-level failure from one the cluster
// itself reported (§7 "transport/cluster-reported error kinds").
type ErrKind string

const (
	// ErrKindTransport covers everything before a response is parsed:
	// dial failures, timeouts, malformed responses.
	ErrKindTransport ErrKind = "transport"
	// ErrKindCluster covers an HTTP error status the cluster returned
	// with a structured error body.
	ErrKindCluster ErrKind = "cluster"
)

// Error is the sum-type transport error the executor surfaces (§7).
type Error struct {
	Kind       ErrKind
	StatusCode int
	ClusterMsg string
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == ErrKindCluster {
		return fmt.Sprintf("cluster returned %d: %s", e.StatusCode, e.ClusterMsg)
	}
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// clusterResponse is the subset of ES's structured error body this parses
// to produce a readable message (§7).
type clusterResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

func clusterError(statusCode int, raw []byte) *Error {
	var parsed clusterResponse
	msg := string(raw)
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error.Reason != "" {
		msg = fmt.Sprintf("%s: %s", parsed.Error.Type, parsed.Error.Reason)
	}
	return &Error{Kind: ErrKindCluster, StatusCode: statusCode, ClusterMsg: msg}
}
