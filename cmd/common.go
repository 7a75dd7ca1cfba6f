// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/openaleph/openaleph-search/internal/cobraext"
	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/executor"
	"github.com/openaleph/openaleph-search/internal/params"
	"github.com/openaleph/openaleph-search/internal/query"
	"github.com/openaleph/openaleph-search/internal/schema"
	"github.com/openaleph/openaleph-search/internal/settings"
	"github.com/openaleph/openaleph-search/internal/transport"
)

// catalogFlagName names the YAML catalog file flag. It is distinct from
// the analyze command's --schema flag, which names one schema inside the
// loaded catalog rather than a path to a catalog file.
const catalogFlagName = "catalog"
const catalogFlagDescription = "path to a YAML schema catalog (defaults to the built-in catalog)"

func addCatalogFlag(cmd *cobra.Command) {
	cmd.Flags().String(catalogFlagName, "", catalogFlagDescription)
}

// loadCatalog opens the catalog file named by --catalog, or falls back to
// the built-in development catalog when the flag is empty.
func loadCatalog(cmd *cobra.Command) (*schema.Catalog, error) {
	path, err := cmd.Flags().GetString(catalogFlagName)
	if err != nil {
		return nil, cobraext.FlagParsingError(err, catalogFlagName)
	}
	if path == "" {
		return schema.NewCatalog(schema.DefaultDefinitions())
	}
	return schema.LoadCatalogFile(path)
}

// loadSettings overlays OPENALEPH_SEARCH_* environment variables onto the
// documented defaults.
func loadSettings() (*settings.Settings, error) {
	return settings.LoadFromEnv()
}

// parseArgsFlag decodes repeated --args "key=value" flags into an ordered
// params.KV list, in the order they were given on the command line.
func parseArgsFlag(cmd *cobra.Command) ([]params.KV, error) {
	raw, err := cmd.Flags().GetStringArray(cobraext.ArgsFlagName)
	if err != nil {
		return nil, cobraext.FlagParsingError(err, cobraext.ArgsFlagName)
	}
	var out []params.KV
	for _, entry := range raw {
		key, value, err := splitKV(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, params.KV{Key: key, Value: value})
	}
	return out, nil
}

// splitKV splits one "key=value" --args entry on its first "=". An entry
// with no "=" at all (e.g. a bare flag name) is rejected rather than
// silently treated as an empty-valued key.
func splitKV(entry string) (key, value string, err error) {
	key, value, ok := strings.Cut(entry, "=")
	if !ok {
		return "", "", fmt.Errorf("invalid --%s entry %q: expected key=value", cobraext.ArgsFlagName, entry)
	}
	return key, value, nil
}

// openInput opens the file named by --input, or stdin when the flag value
// is "-" (§6 CLI "-i FILE").
func openInput(cmd *cobra.Command) (io.ReadCloser, error) {
	path, err := cmd.Flags().GetString(cobraext.InputFlagName)
	if err != nil {
		return nil, cobraext.FlagParsingError(err, cobraext.InputFlagName)
	}
	if path == "" {
		return nil, cobraext.MissingFlagError(cobraext.InputFlagName)
	}
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// scanLines returns a bufio.Scanner over r sized to accept long JSON
// lines (a single entity's properties can easily exceed the default 64KB
// token buffer).
func scanLines(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return scanner
}

// newTransportClient builds the Elasticsearch transport client every
// cluster-touching subcommand shares, from the process-wide settings.
func newTransportClient(s *settings.Settings) (*transport.Client, error) {
	return transport.NewClient(transport.Options{
		URI:        s.URI,
		Timeout:    time.Duration(s.Timeout) * time.Second,
		MaxRetries: s.MaxRetries,
	})
}

// buildQueryOptions translates Settings into the query.Options every query
// builder needs (§4.4 function_score boosting, per-bucket weights).
func buildQueryOptions(s *settings.Settings, cat *schema.Catalog) query.Options {
	return query.Options{
		QueryFunctionScore: s.QueryFunctionScore,
		OpenAlephMode:      s.OpenAlephMode,
		IndexBoost:         s.IndexBoostByBucket(),
		NumericFields:      numericFields(cat),
	}
}

// numericFields collects every numeric-group property name across the
// catalog, the set query.Options.NumericFields needs to render "numeric.*"
// sort clauses instead of sorting the raw keyword field (§4.3 "sort").
func numericFields(cat *schema.Catalog) map[string]bool {
	out := map[string]bool{}
	for _, name := range cat.Names() {
		s, ok := cat.Lookup(name)
		if !ok {
			continue
		}
		for propName, prop := range s.Properties {
			if prop.IsNumeric() {
				out[propName] = true
			}
		}
	}
	return out
}

// newExecutor wires an Executor over client for the currently configured
// index_read versions (§4.9).
func newExecutor(s *settings.Settings, cat *schema.Catalog, client transport.Transport) *executor.Executor {
	return &executor.Executor{
		Transport:   client,
		IndexPrefix: s.IndexPrefix,
		IndexRead:   s.IndexRead,
		Catalog:     cat,
	}
}

// runSearch executes builder against every schema in cat (the CLI has no
// narrower default scope than "the whole catalog") and returns the raw
// response.
func runSearch(ctx context.Context, exec *executor.Executor, cat *schema.Catalog, builder query.Builder, dehydrate bool) (common.MapStr, error) {
	return exec.Search(ctx, builder, cat.Names(), "", dehydrate)
}
