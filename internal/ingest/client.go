// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v7"
)

// BulkItemResult is one item's outcome inside a _bulk response.
type BulkItemResult struct {
	ID          string
	Status      int
	ErrorType   string
	ErrorReason string
}

// Failed reports whether this item did not succeed.
func (r BulkItemResult) Failed() bool {
	return r.ErrorType != ""
}

// BulkResult is the parsed shape of a _bulk response, reduced to what the
// pipeline needs to classify per-item outcomes (§7 error kind 6).
type BulkResult struct {
	HasErrors bool
	Items     []BulkItemResult
}

// Transport is the capability the bulk-submit stage depends on: issue a
// _bulk request and, between loads, relax/restore the refresh interval.
// Narrow and mockable, the same shape as internal/transport.Transport.
type Transport interface {
	Bulk(ctx context.Context, index string, body []byte) (BulkResult, error)
	SetRefreshInterval(ctx context.Context, index, interval string) error
}

// ESClient is the default Transport, backed by go-elasticsearch/v7 exactly
// as internal/transport.Client wraps the same library for search.
type ESClient struct {
	es *elasticsearch.Client
}

// NewESClient wraps an already-configured *elasticsearch.Client.
func NewESClient(es *elasticsearch.Client) *ESClient {
	return &ESClient{es: es}
}

func (c *ESClient) Bulk(ctx context.Context, index string, body []byte) (BulkResult, error) {
	resp, err := c.es.Bulk(
		bytes.NewReader(body),
		c.es.Bulk.WithContext(ctx),
		c.es.Bulk.WithIndex(index),
	)
	if err != nil {
		return BulkResult{}, fmt.Errorf("ingest: bulk request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return BulkResult{}, fmt.Errorf("ingest: reading bulk response: %w", err)
	}
	if resp.IsError() {
		return BulkResult{}, fmt.Errorf("ingest: bulk request failed: %s: %s", resp.Status(), raw)
	}

	return parseBulkResponse(raw)
}

func (c *ESClient) SetRefreshInterval(ctx context.Context, index, interval string) error {
	body, err := json.Marshal(map[string]interface{}{
		"index": map[string]interface{}{"refresh_interval": interval},
	})
	if err != nil {
		return fmt.Errorf("ingest: encoding refresh_interval: %w", err)
	}
	resp, err := c.es.Indices.PutSettings(
		bytes.NewReader(body),
		c.es.Indices.PutSettings.WithContext(ctx),
		c.es.Indices.PutSettings.WithIndex(index),
	)
	if err != nil {
		return fmt.Errorf("ingest: setting refresh_interval: %w", err)
	}
	defer resp.Body.Close()
	if resp.IsError() {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ingest: setting refresh_interval: %s: %s", resp.Status(), raw)
	}
	return nil
}

type bulkResponseWire struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

func parseBulkResponse(raw []byte) (BulkResult, error) {
	var wire bulkResponseWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return BulkResult{}, fmt.Errorf("ingest: decoding bulk response: %w", err)
	}

	out := BulkResult{HasErrors: wire.Errors}
	for _, item := range wire.Items {
		for _, v := range item {
			r := BulkItemResult{ID: v.ID, Status: v.Status}
			if v.Error != nil {
				r.ErrorType = v.Error.Type
				r.ErrorReason = v.Error.Reason
			}
			out.Items = append(out.Items, r)
		}
	}
	return out, nil
}
