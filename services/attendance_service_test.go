package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedMatches(t *testing.T) {
	assert.True(t, seedMatches("a1B2c3D4e5", "a1B2c3D4e5"))
	assert.False(t, seedMatches("a1B2c3D4e5", "a1B2c3D4e6"))
	assert.False(t, seedMatches("a1B2c3D4e5", "a1B2c3D4e5x"))
	assert.False(t, seedMatches("", "a1B2c3D4e5"))
}

func TestScanLockKey(t *testing.T) {
	assert.Equal(t, "attendance:lock:p123", scanLockKey("p123"))
}
