// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/logger"
	"github.com/openaleph/openaleph-search/internal/multierror"
	"github.com/openaleph/openaleph-search/internal/nameproc"
	"github.com/openaleph/openaleph-search/internal/schema"
)

// IndexResolver maps an entity's schema name to the concrete index it
// should be written to. The executor's bucket routing produces this for a
// given index_write version.
type IndexResolver func(schemaName string) (index string, ok bool)

// Pipeline is the concurrent indexing pipeline: a CPU-bound preprocessing
// stage (entity -> document, worker pool sized by Concurrency) feeding a
// bounded channel into a network-bound bulk-submit stage chunked by count
// or byte size, whichever is hit first.
type Pipeline struct {
	Catalog      *schema.Catalog
	Dict         nameproc.SymbolDictionary
	NamespaceIDs bool
	ResolveIndex IndexResolver
	Transport    Transport

	Concurrency   int
	ChunkSize     int
	MaxChunkBytes int64
	MaxRetries    int
}

// Report summarizes one Run: counts plus every non-fatal failure
// encountered along the way (§7 error kind 6 "aggregated and reported at
// batch end").
type Report struct {
	Indexed int
	Dropped int
	Errors  multierror.Error
}

type preparedItem struct {
	index   string
	doc     Document
	attempt int
}

// Run drains entities, transforming and bulk-indexing them until the
// channel closes or ctx is cancelled. Producers (the entities channel's
// sender) experience backpressure automatically: the preprocessing stage
// only pulls as fast as the bounded queue in front of the bulk-submit
// stage drains.
func (p *Pipeline) Run(ctx context.Context, entities <-chan Entity) (Report, error) {
	concurrency := p.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	queueSize := p.ChunkSize * 2
	if queueSize < 1 {
		queueSize = 1
	}

	queue := make(chan preparedItem, queueSize)

	var preErrs multierror.Error
	var preErrsMu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			for e := range entities {
				index, ok := p.ResolveIndex(e.Schema)
				if !ok {
					preErrsMu.Lock()
					preErrs = append(preErrs, fmt.Errorf("ingest: no index for schema %q (entity %s)", e.Schema, e.ID))
					preErrsMu.Unlock()
					continue
				}
				doc, err := ToDocument(p.Catalog, e, p.Dict, p.NamespaceIDs)
				if err != nil {
					preErrsMu.Lock()
					preErrs = append(preErrs, err)
					preErrsMu.Unlock()
					continue
				}
				select {
				case queue <- preparedItem{index: index, doc: doc}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(queue)
	}()

	report, err := p.submit(ctx, queue, concurrency)
	report.Errors = append(report.Errors, preErrs...)
	return report, err
}

// submit runs the chunking and bulk-submit half of the pipeline: it reads
// prepared items off queue, batches them by ChunkSize/MaxChunkBytes, and
// dispatches batches with at most `concurrency` outstanding requests.
func (p *Pipeline) submit(ctx context.Context, queue <-chan preparedItem, concurrency int) (Report, error) {
	sem := make(chan struct{}, concurrency)
	retry := make(chan preparedItem, p.ChunkSize)

	var report Report
	var reportMu sync.Mutex
	var inFlight sync.WaitGroup
	var fatalErr error
	var fatalMu sync.Mutex

	dispatch := func(batch []preparedItem) {
		sem <- struct{}{}
		inFlight.Add(1)
		go func(batch []preparedItem) {
			defer func() { <-sem; inFlight.Done() }()
			batchID := uuid.NewString()
			logger.Debugf("bulk batch %s: submitting %d item(s) (%s)", batchID, len(batch), batchSize(batch).Humanize())
			indexed, dropped, retries, err := p.submitBatch(ctx, batch)
			if err != nil {
				logger.Debugf("bulk batch %s: fatal error: %v", batchID, err)
				fatalMu.Lock()
				if fatalErr == nil {
					fatalErr = err
				}
				fatalMu.Unlock()
				return
			}
			logger.LogBulkBatch(batchID, batch[0].index, len(batch), indexed, dropped, len(retries))
			reportMu.Lock()
			report.Indexed += indexed
			report.Dropped += dropped
			reportMu.Unlock()
			for _, item := range retries {
				select {
				case retry <- item:
				case <-ctx.Done():
				}
			}
		}(batch)
	}

	var batch []preparedItem
	var batchBytes int64
	flush := func() {
		if len(batch) == 0 {
			return
		}
		dispatch(batch)
		batch = nil
		batchBytes = 0
	}

	retryDone := make(chan struct{})
	go func() {
		defer close(retryDone)
		for item := range retry {
			if item.attempt >= p.MaxRetries {
				reportMu.Lock()
				report.Errors = append(report.Errors, fmt.Errorf("ingest: %s: exceeded max_retries", item.doc.ID))
				reportMu.Unlock()
				continue
			}
			time.Sleep(backoff(item.attempt))
			logger.Debugf("retrying bulk item %s (attempt %d)", item.doc.ID, item.attempt+1)
			dispatch([]preparedItem{{index: item.index, doc: item.doc, attempt: item.attempt + 1}})
		}
	}()

loop:
	for {
		select {
		case item, ok := <-queue:
			if !ok {
				break loop
			}
			batchBytes += estimateSize(item.doc.Source)
			batch = append(batch, item)
			if len(batch) >= p.ChunkSize || (p.MaxChunkBytes > 0 && batchBytes >= p.MaxChunkBytes) {
				flush()
			}
		case <-ctx.Done():
			fatalMu.Lock()
			if fatalErr == nil {
				fatalErr = ctx.Err()
			}
			fatalMu.Unlock()
			break loop
		}
	}
	flush()
	inFlight.Wait()
	close(retry)
	<-retryDone

	fatalMu.Lock()
	defer fatalMu.Unlock()
	return report, fatalErr
}

// submitBatch issues one _bulk request for batch. Every action line names
// its own _index, so a batch may mix items bound for different bucket
// indices; batch[0]'s index is only the request's default. It classifies
// the response per §7 error kind 6:
// version conflicts are dropped, 429/timeout items are returned for retry,
// everything else is a fatal transport/cluster error for this batch.
func (p *Pipeline) submitBatch(ctx context.Context, batch []preparedItem) (indexed, dropped int, retries []preparedItem, err error) {
	if len(batch) == 0 {
		return 0, 0, nil, nil
	}
	index := batch[0].index
	body, err := encodeBulkBody(batch)
	if err != nil {
		return 0, 0, nil, err
	}

	result, err := p.Transport.Bulk(ctx, index, body)
	if err != nil {
		return 0, 0, nil, err
	}
	if !result.HasErrors {
		return len(batch), 0, nil, nil
	}

	byID := make(map[string]preparedItem, len(batch))
	for _, item := range batch {
		byID[item.doc.ID] = item
	}
	for _, r := range result.Items {
		if !r.Failed() {
			indexed++
			continue
		}
		switch {
		case r.ErrorType == "version_conflict_engine_exception":
			dropped++
		case isTransient(r):
			if item, ok := byID[r.ID]; ok {
				retries = append(retries, item)
			}
		default:
			return indexed, dropped, retries, fmt.Errorf("ingest: bulk item %s failed: %s: %s", r.ID, r.ErrorType, r.ErrorReason)
		}
	}
	return indexed, dropped, retries, nil
}

func isTransient(r BulkItemResult) bool {
	if r.Status == 429 {
		return true
	}
	return strings.Contains(r.ErrorType, "es_rejected_execution") ||
		strings.Contains(r.ErrorType, "timeout")
}

func backoff(attempt int) time.Duration {
	d := time.Duration(1<<uint(attempt)) * 200 * time.Millisecond
	if d > 10*time.Second {
		return 10 * time.Second
	}
	return d
}

func estimateSize(doc common.MapStr) int64 {
	raw, err := json.Marshal(doc)
	if err != nil {
		return 0
	}
	return int64(len(raw))
}

func batchSize(batch []preparedItem) common.ByteSize {
	var total int64
	for _, item := range batch {
		total += estimateSize(item.doc.Source)
	}
	return common.ByteSize(total)
}

func encodeBulkBody(batch []preparedItem) ([]byte, error) {
	var buf bytes.Buffer
	for _, item := range batch {
		action := common.MapStr{"index": common.MapStr{"_index": item.index, "_id": item.doc.ID}}
		actionLine, err := json.Marshal(action)
		if err != nil {
			return nil, fmt.Errorf("ingest: encoding bulk action line: %w", err)
		}
		sourceLine, err := json.Marshal(item.doc.Source)
		if err != nil {
			return nil, fmt.Errorf("ingest: encoding bulk source line: %w", err)
		}
		buf.Write(actionLine)
		buf.WriteByte('\n')
		buf.Write(sourceLine)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
