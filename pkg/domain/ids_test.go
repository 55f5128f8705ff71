package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBusinessID(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		id, err := ParseBusinessID("  SME-001  ")
		require.NoError(t, err)
		assert.Equal(t, BusinessID("SME-001"), id)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := ParseBusinessID("   ")
		assert.Error(t, err)
	})

	t.Run("rejects oversized", func(t *testing.T) {
		_, err := ParseBusinessID(strings.Repeat("x", 65))
		assert.Error(t, err)
	})
}

func TestAssessmentIDRoundTrip(t *testing.T) {
	id := NewAssessmentID()
	assert.False(t, id.IsNil())

	parsed, err := ParseAssessmentID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseUserIDInvalid(t *testing.T) {
	_, err := ParseUserID("not-a-uuid")
	assert.Error(t, err)

	var zero UserID
	assert.True(t, zero.IsNil())
}
