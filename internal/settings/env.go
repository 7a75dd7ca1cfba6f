// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package settings

import (
	"fmt"
	"os"
	"strings"

	"github.com/elastic/go-ucfg"
)

// LoadFromEnv builds a Settings by overlaying every OPENALEPH_SEARCH_*
// environment variable onto DefaultSettings, unpacking them onto a
// config-tagged struct via go-ucfg.
func LoadFromEnv() (*Settings, error) {
	return loadFromEnviron(os.Environ())
}

// ReloadFromEnv re-derives s from the current environment in place, for
// tests that mutate the environment between cases.
func (s *Settings) ReloadFromEnv() error {
	fresh, err := LoadFromEnv()
	if err != nil {
		return err
	}
	*s = *fresh
	return nil
}

func loadFromEnviron(environ []string) (*Settings, error) {
	raw := map[string]interface{}{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		configKey := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		raw[configKey] = splitListValue(configKey, value)
	}

	cfg, err := ucfg.NewFrom(raw, ucfg.PathSep("."))
	if err != nil {
		return nil, fmt.Errorf("settings: building config from environment: %w", err)
	}

	out := DefaultSettings()
	if err := cfg.Unpack(out); err != nil {
		return nil, fmt.Errorf("settings: unpacking environment config: %w", err)
	}
	return out, nil
}

// listValuedKeys names the config keys that accept a comma-separated list
// of values over the wire.
var listValuedKeys = map[string]bool{
	"index_read": true,
}

func splitListValue(key, value string) interface{} {
	if !listValuedKeys[key] {
		return value
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
