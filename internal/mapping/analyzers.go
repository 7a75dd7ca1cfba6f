// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package mapping emits the Elasticsearch index settings, analyzers and
// per-schema property mapping that back the query core (§4.2).
package mapping

import "github.com/openaleph/openaleph-search/internal/common"

// charFilters returns the custom character filters shared by analyzers and
// normalizers (§4.2 "Character filters").
func charFilters() common.MapStr {
	return common.MapStr{
		"remove_punctuation": common.MapStr{
			"type":        "pattern_replace",
			"pattern":     `[^\p{L}\p{N}]`,
			"replacement": " ",
		},
		"squash_spaces": common.MapStr{
			"type":        "pattern_replace",
			"pattern":     `\s+`,
			"replacement": " ",
		},
		"remove_html_tags": common.MapStr{
			"type":        "pattern_replace",
			"pattern":     `<[^>]*>`,
			"replacement": " ",
		},
	}
}

// analyzers returns "icu-default" and "strip-html" (§4.2 "Analyzers").
func analyzers() common.MapStr {
	return common.MapStr{
		"icu-default": common.MapStr{
			"type":      "custom",
			"tokenizer": "icu_tokenizer",
			"char_filter": []string{
				"remove_html_tags",
			},
			"filter": []string{
				"icu_folding",
				"icu_normalizer",
			},
		},
		"strip-html": common.MapStr{
			"type":      "custom",
			"tokenizer": "standard",
			"char_filter": []string{
				"remove_html_tags",
			},
			"filter": []string{
				"lowercase",
				"asciifolding",
				"trim",
			},
		},
	}
}

// normalizers returns "icu-default", "name-kw-normalizer" and
// "kw-normalizer" (§4.2 "Normalizers").
func normalizers() common.MapStr {
	return common.MapStr{
		"icu-default": common.MapStr{
			"type":   "custom",
			"filter": []string{"icu_folding"},
		},
		"name-kw-normalizer": common.MapStr{
			"type":        "custom",
			"char_filter": []string{"remove_punctuation", "squash_spaces"},
			"filter":      []string{"lowercase", "asciifolding", "trim"},
		},
		"kw-normalizer": common.MapStr{
			"type":        "custom",
			"char_filter": []string{"remove_html_tags", "squash_spaces"},
			"filter":      []string{"trim"},
		},
	}
}

// similarity returns the "weak_length_norm" BM25 variant attached to the
// name field (§4.2 "Similarity").
func similarity() common.MapStr {
	return common.MapStr{
		"weak_length_norm": common.MapStr{
			"type": "BM25",
			"b":    0.25,
		},
	}
}
