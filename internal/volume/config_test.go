package volume

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-hfsplus/internal/device"
	"github.com/deploymenttheory/go-hfsplus/internal/services"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, services.DefaultPathCacheCapacity, cfg.PathCacheCapacity)
	assert.False(t, cfg.BufferedIO)
	assert.Equal(t, device.DefaultBufferItems, cfg.BufferItems)
	assert.Equal(t, uint32(device.FallbackBlockSize), cfg.FallbackBlockSize)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
