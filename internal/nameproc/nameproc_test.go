// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package nameproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaleph/openaleph-search/internal/schema"
)

func personSchema(t *testing.T) *schema.Schema {
	t.Helper()
	cat, err := schema.DefaultCatalog()
	require.NoError(t, err)
	s, ok := cat.Lookup("Person")
	require.True(t, ok)
	return s
}

func TestPreprocessCollapsesWhitespaceAndCase(t *testing.T) {
	assert.Equal(t, "vladimir putin", Preprocess("  Vladimir   PUTIN  "))
}

func TestNameKeysCaseAndDiacriticInvariant(t *testing.T) {
	s := personSchema(t)
	a := NameKeys(s, []string{"José Pérez"})
	b := NameKeys(s, []string{"JOSE PEREZ"})
	assert.Equal(t, a, b)
	for _, k := range a {
		assert.GreaterOrEqual(t, len(k), minKeyLen)
	}
}

func TestNamePartsDropsShortTokens(t *testing.T) {
	s := personSchema(t)
	parts := NameParts(s, []string{"J Pacino"})
	assert.Contains(t, parts, "pacino")
	assert.NotContains(t, parts, "j")
}

func TestPhoneticSmithSmytheShareCode(t *testing.T) {
	s := personSchema(t)
	smith := Phonetic(s, []string{"Smith"})
	smythe := Phonetic(s, []string{"Smythe"})
	require.NotEmpty(t, smith)
	require.NotEmpty(t, smythe)
	assert.Equal(t, smith, smythe)
	assert.Contains(t, smith, "SM0")
}

func TestSymbolsCrossAlphabet(t *testing.T) {
	s := personSchema(t)
	latin := Symbols(s, []string{"Vladimir Putin"}, nil)
	cyrillic := Symbols(s, []string{"Владимир Путин"}, nil)
	require.NotEmpty(t, latin)
	require.NotEmpty(t, cyrillic)
	assert.ElementsMatch(t, latin, cyrillic)
}

func TestPickNamesBoundedByLimitAndInput(t *testing.T) {
	names := []string{"Vladimir Putin", "V. Putin", "Vladimir V. Putin"}
	picked := PickNames(names, 5)
	assert.Len(t, picked, 3)

	picked = PickNames(names, 2)
	assert.Len(t, picked, 2)
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, Levenshtein("abc", "abc"))
	assert.Equal(t, 3, Levenshtein("abc", ""))
	assert.Equal(t, 1, Levenshtein("smith", "smithe"))
}
