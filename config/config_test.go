package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/binaryforge/byteseek/config"
)

func TestDefaultsRoundTrip(t *testing.T) {
	orig := config.DefaultWindowSize()
	defer config.SetDefaultWindowSize(orig)

	config.SetDefaultWindowSize(1024)
	assert.Equal(t, 1024, config.DefaultWindowSize())
}

func TestSetIgnoresNonPositive(t *testing.T) {
	orig := config.DefaultMRUDepth()
	defer config.SetDefaultMRUDepth(orig)

	config.SetDefaultMRUDepth(5)
	config.SetDefaultMRUDepth(0)
	config.SetDefaultMRUDepth(-1)
	assert.Equal(t, 5, config.DefaultMRUDepth())
}

func TestWuManberBlockSizeDefault(t *testing.T) {
	assert.Equal(t, 2, config.DefaultWuManberBlockSize())
}

func TestMaxMatchLengthDefault(t *testing.T) {
	assert.True(t, config.DefaultMaxMatchLength() > 0)
}
