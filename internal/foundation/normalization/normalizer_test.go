package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/tasktimer/internal/foundation/errors"
)

type testEnum string

const (
	testEnumNone  testEnum = ""
	testEnumAlpha testEnum = "alpha"
	testEnumBeta  testEnum = "beta"
)

func newTestNormalizer() *Normalizer[testEnum] {
	return NewNormalizer("test enum", map[string]testEnum{
		"":      testEnumNone,
		"none":  testEnumNone,
		"alpha": testEnumAlpha,
		"BETA":  testEnumBeta,
	}, testEnumNone)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name     string
		input    string
		expected testEnum
	}{
		{"exact match", "alpha", testEnumAlpha},
		{"case insensitive", "ALPHA", testEnumAlpha},
		{"key normalized at construction", "beta", testEnumBeta},
		{"with spaces", "  beta  ", testEnumBeta},
		{"empty", "", testEnumNone},
		{"alias", "None", testEnumNone},
		{"invalid input falls back", "gamma", testEnumNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_Parse(t *testing.T) {
	n := newTestNormalizer()

	got, err := n.Parse(" Alpha ")
	require.NoError(t, err)
	require.Equal(t, testEnumAlpha, got)

	_, err = n.Parse("gamma")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
	require.Contains(t, err.Error(), "invalid test enum")

	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	valid, ok := classified.Context().Get("valid")
	require.True(t, ok)
	require.Equal(t, []string{"", "alpha", "beta", "none"}, valid)
}

func TestNormalizer_Valid(t *testing.T) {
	n := newTestNormalizer()
	require.True(t, n.Valid(testEnumBeta))
	require.False(t, n.Valid(testEnum("gamma")))
}

func TestNormalizer_ValidKeysIsCopy(t *testing.T) {
	n := newTestNormalizer()
	keys := n.ValidKeys()
	keys[0] = "mutated"
	require.NotEqual(t, "mutated", n.ValidKeys()[0])
}
