package config

import (
	"time"

	"github.com/spf13/viper"
)

type Syncer struct {
	// How often a sync cycle is started. A new cycle never starts
	// before the previous one finished.
	Interval time.Duration

	// Number of referenda requested per source page
	PageSize int

	// Upper bound on pages walked in one cycle
	MaxPages int

	// Timeout for a single sync cycle
	CycleTimeout time.Duration
}

func setSyncerDefaults() {
	viper.SetDefault("Syncer.Interval", "30m")
	viper.SetDefault("Syncer.PageSize", "50")
	viper.SetDefault("Syncer.MaxPages", "10")
	viper.SetDefault("Syncer.CycleTimeout", "15m")
}
