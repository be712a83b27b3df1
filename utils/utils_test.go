package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSeed_LengthAndCharset(t *testing.T) {
	seed, err := RandomSeed(10)
	require.NoError(t, err)

	assert.Len(t, seed, 10)
	for _, c := range seed {
		assert.Contains(t, seedCharset, string(c))
	}
}

func TestRandomSeed_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seed, err := RandomSeed(10)
		require.NoError(t, err)
		assert.False(t, seen[seed], "seed %q generated twice", seed)
		seen[seed] = true
	}
}

func TestRandomSeed_ZeroLength(t *testing.T) {
	seed, err := RandomSeed(0)
	require.NoError(t, err)
	assert.Empty(t, seed)
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(8)
	require.NoError(t, err)

	assert.Len(t, code, 16)
	assert.Equal(t, strings.ToUpper(code), code)
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "Antwerp", "Antwerp"},
		{"simple markup", "<p>Antwerp</p>", "Antwerp"},
		{"nested markup", "<div><b>Main Hall</b>, Antwerp</div>", "Main Hall, Antwerp"},
		{"surrounding whitespace", "  <p> Antwerp </p>  ", "Antwerp"},
		{"empty", "", ""},
		{"only markup", "<br/><hr/>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripTags(tt.input))
		})
	}
}
