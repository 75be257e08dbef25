package common

import (
	"context"

	"github.com/opensquare-network/referenda-syncer/src/utils/config"
)

type contextKey int

const configKey contextKey = 0

// Puts the config into the context
func SetConfig(ctx context.Context, config *config.Config) context.Context {
	return context.WithValue(ctx, configKey, config)
}

// Gets the config from the context
func GetConfig(ctx context.Context) *config.Config {
	config, ok := ctx.Value(configKey).(*config.Config)
	if !ok {
		return nil
	}
	return config
}
