// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package transport wraps the Elasticsearch client the executor posts
// request bodies through (§4.9, §7 "transport/cluster-reported errors").
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"

	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/retry"
)

// Transport is the narrow capability the executor needs: run a search
// against a set of indices and return the raw response body. It exists so
// tests can substitute a fake without standing up a cluster.
type Transport interface {
	Search(ctx context.Context, indices []string, body common.MapStr, routingKey string) (common.MapStr, error)
}

// Options configures a Client (§6 "uri", "timeout", "max_retries").
type Options struct {
	URI        string
	Timeout    time.Duration
	MaxRetries int
}

// Client is the default Transport, backed by go-elasticsearch/v7 with
// go-retryablehttp wrapping its HTTP round-tripper (§6 "max_retries").
type Client struct {
	es *elasticsearch.Client
}

// NewClient builds a Client from Options.
func NewClient(opts Options) (*Client, error) {
	if opts.URI == "" {
		return nil, fmt.Errorf("transport: uri is required")
	}
	httpClient := &http.Client{Timeout: opts.Timeout}
	httpClient = retry.WrapHTTPClient(httpClient, retry.HTTPOptions{RetryMax: opts.MaxRetries})

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{opts.URI},
		Transport: httpClient.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("transport: building client: %w", err)
	}
	return &Client{es: es}, nil
}

// ESClient exposes the underlying go-elasticsearch client for callers that
// need capabilities Transport doesn't expose, such as internal/ingest's
// bulk indexing API.
func (c *Client) ESClient() *elasticsearch.Client {
	return c.es
}

// IndexExists reports whether index already exists in the cluster.
func (c *Client) IndexExists(ctx context.Context, index string) (bool, error) {
	resp, err := c.es.Indices.Exists([]string{index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, &Error{Kind: ErrKindTransport, Err: err}
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

// CreateIndex creates index with the given mapping/settings body (§11
// "upgrade creates any index_write indices that don't exist yet").
func (c *Client) CreateIndex(ctx context.Context, index string, body common.MapStr) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("transport: encoding index body: %w", err)
	}
	resp, err := c.es.Indices.Create(
		index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return &Error{Kind: ErrKindTransport, Err: err}
	}
	defer resp.Body.Close()
	if resp.IsError() {
		raw, _ := io.ReadAll(resp.Body)
		return clusterError(resp.StatusCode, raw)
	}
	return nil
}

// DeleteIndex deletes index, used by §11's reset command. Deleting an
// index that doesn't exist is not treated as an error.
func (c *Client) DeleteIndex(ctx context.Context, index string) error {
	resp, err := c.es.Indices.Delete([]string{index}, c.es.Indices.Delete.WithContext(ctx))
	if err != nil {
		return &Error{Kind: ErrKindTransport, Err: err}
	}
	defer resp.Body.Close()
	if resp.IsError() && resp.StatusCode != http.StatusNotFound {
		raw, _ := io.ReadAll(resp.Body)
		return clusterError(resp.StatusCode, raw)
	}
	return nil
}

// Search POSTs a built request body against the given indices (§4.9
// "POST the request body to the transport"). A non-nil routingKey is
// forwarded as the request's routing parameter (§4.9 "If routing_key is
// non-null and small, pass it as the request's routing").
func (c *Client) Search(ctx context.Context, indices []string, body common.MapStr, routingKey string) (common.MapStr, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("transport: encoding request body: %w", err)
	}

	opts := []func(*esapi.SearchRequest){
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(indices...),
		c.es.Search.WithBody(bytes.NewReader(payload)),
	}
	if routingKey != "" {
		opts = append(opts, c.es.Search.WithRouting(routingKey))
	}

	resp, err := c.es.Search(opts...)
	if err != nil {
		return nil, &Error{Kind: ErrKindTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: ErrKindTransport, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.IsError() {
		return nil, clusterError(resp.StatusCode, raw)
	}

	var out common.MapStr
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &Error{Kind: ErrKindTransport, Err: fmt.Errorf("decoding response body: %w", err)}
	}
	return out, nil
}

// Analyze previews how text would be tokenized by the mapped analyzer for
// field in index, backing the "analyze" CLI command (§6 CLI "analyze
// --field F [--schema S]").
func (c *Client) Analyze(ctx context.Context, index, field, text string) (common.MapStr, error) {
	payload, err := json.Marshal(common.MapStr{"field": field, "text": text})
	if err != nil {
		return nil, fmt.Errorf("transport: encoding analyze body: %w", err)
	}

	resp, err := c.es.Indices.Analyze(
		c.es.Indices.Analyze.WithContext(ctx),
		c.es.Indices.Analyze.WithIndex(index),
		c.es.Indices.Analyze.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return nil, &Error{Kind: ErrKindTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: ErrKindTransport, Err: fmt.Errorf("reading response body: %w", err)}
	}
	if resp.IsError() {
		return nil, clusterError(resp.StatusCode, raw)
	}

	var out common.MapStr
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &Error{Kind: ErrKindTransport, Err: fmt.Errorf("decoding response body: %w", err)}
	}
	return out, nil
}
