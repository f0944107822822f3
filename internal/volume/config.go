package volume

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-hfsplus/internal/device"
	"github.com/deploymenttheory/go-hfsplus/internal/services"
)

// Config holds the tunables of a volume handle.
type Config struct {
	// PathCacheCapacity is the slot count of the per-volume path cache.
	PathCacheCapacity int `mapstructure:"path_cache_capacity"`

	// BufferedIO enables the userspace buffered-read indirection.
	BufferedIO bool `mapstructure:"buffered_io"`

	// BufferItems is the buffered-indirection chunk count.
	BufferItems int `mapstructure:"buffer_items"`

	// FallbackBlockSize is used when block-size discovery yields nothing.
	FallbackBlockSize uint32 `mapstructure:"fallback_block_size"`
}

// DefaultConfig returns the recommended configuration.
func DefaultConfig() *Config {
	return &Config{
		PathCacheCapacity: services.DefaultPathCacheCapacity,
		BufferedIO:        false,
		BufferItems:       device.DefaultBufferItems,
		FallbackBlockSize: device.FallbackBlockSize,
	}
}

// LoadConfig loads volume configuration using Viper.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("hfsplus-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.hfsplus")
	viper.AddConfigPath("/etc/hfsplus")

	// Set defaults
	viper.SetDefault("path_cache_capacity", services.DefaultPathCacheCapacity)
	viper.SetDefault("buffered_io", false)
	viper.SetDefault("buffer_items", device.DefaultBufferItems)
	viper.SetDefault("fallback_block_size", device.FallbackBlockSize)

	// Allow environment variables
	viper.SetEnvPrefix("HFS")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
