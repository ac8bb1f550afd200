package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	generated, err := Generate("user")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(generated, "user-"))
	assert.Greater(t, len(generated), len("user-"))
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		generated, err := Generate("prod")
		require.NoError(t, err)
		assert.False(t, seen[generated], "duplicate id %s", generated)
		seen[generated] = true
	}
}
