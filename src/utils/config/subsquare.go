package config

import (
	"time"

	"github.com/spf13/viper"
)

type SubSquare struct {
	// Referenda listing API
	Endpoint string

	// Base URL of the discussion UI, linked from proposal content
	ReferendaURL string

	RequestTimeout time.Duration

	// How many times resty retries a failed request
	RetryCount int
}

func setSubSquareDefaults() {
	viper.SetDefault("SubSquare.Endpoint", "https://polkadot-api.subsquare.io")
	viper.SetDefault("SubSquare.ReferendaURL", "https://polkadot.subsquare.io/referenda")
	viper.SetDefault("SubSquare.RequestTimeout", "30s")
	viper.SetDefault("SubSquare.RetryCount", "1")
}
