package config

import (
	"time"

	"github.com/spf13/viper"
)

type Redis struct {
	// Notifications are skipped entirely when disabled
	Enabled bool

	Port     uint16
	Host     string
	User     string
	Password string
	DB       int

	// Channel published proposals are announced on
	ChannelName string

	MinIdleConns    int
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration

	MaxWorkers   int
	MaxQueueSize int

	// Backoff limits for publish retries
	MaxElapsedTime time.Duration
	MaxInterval    time.Duration
}

func setRedisDefaults() {
	viper.SetDefault("Redis.Enabled", "false")
	viper.SetDefault("Redis.Port", "6379")
	viper.SetDefault("Redis.Host", "127.0.0.1")
	viper.SetDefault("Redis.User", "")
	viper.SetDefault("Redis.Password", "")
	viper.SetDefault("Redis.DB", "0")
	viper.SetDefault("Redis.ChannelName", "proposals")
	viper.SetDefault("Redis.MinIdleConns", "1")
	viper.SetDefault("Redis.MaxIdleConns", "2")
	viper.SetDefault("Redis.MaxOpenConns", "5")
	viper.SetDefault("Redis.ConnMaxIdleTime", "5m")
	viper.SetDefault("Redis.ConnMaxLifetime", "1h")
	viper.SetDefault("Redis.MaxWorkers", "1")
	viper.SetDefault("Redis.MaxQueueSize", "100")
	viper.SetDefault("Redis.MaxElapsedTime", "2m")
	viper.SetDefault("Redis.MaxInterval", "10s")
}
