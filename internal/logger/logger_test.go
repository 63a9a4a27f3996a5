package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, json := range []bool{true, false} {
		for _, debug := range []bool{true, false} {
			l, err := New(json, debug)
			require.NoError(t, err)
			require.NotNil(t, l)
		}
	}
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "short", TruncateForLog("short", 10))
	assert.Equal(t, "abc...", TruncateForLog("abcdefgh", 3))
	assert.Equal(t, "", TruncateForLog("anything", 0))
	assert.Equal(t, "trimmed", TruncateForLog("  trimmed  ", 10))
}
