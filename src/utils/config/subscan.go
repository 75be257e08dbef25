package config

import (
	"time"

	"github.com/spf13/viper"
)

type Subscan struct {
	// Chain metadata API
	Endpoint string

	// Sent in the X-API-Key header
	ApiKey string

	// Number of blocks subtracted from the reported best height.
	// The resulting height is treated as finalized.
	FinalityOffset uint64

	RequestTimeout time.Duration

	// Subscan enforces per-key quotas
	RateLimitPerSecond int
}

func setSubscanDefaults() {
	viper.SetDefault("Subscan.Endpoint", "https://polkadot.api.subscan.io")
	viper.SetDefault("Subscan.ApiKey", "")
	viper.SetDefault("Subscan.FinalityOffset", "50")
	viper.SetDefault("Subscan.RequestTimeout", "30s")
	viper.SetDefault("Subscan.RateLimitPerSecond", "4")
}
