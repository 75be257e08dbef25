package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	conf := Default()
	require.NotNil(t, conf)

	require.Equal(t, 30*time.Minute, conf.Syncer.Interval)
	require.Equal(t, 50, conf.Syncer.PageSize)
	require.Equal(t, "https://polkadot-api.subsquare.io", conf.SubSquare.Endpoint)
	require.Equal(t, uint64(50), conf.Subscan.FinalityOffset)
	require.Equal(t, "polkadot", conf.OpenSquare.Network)
	require.Equal(t, []string{"Aye", "Nay", "Abstain"}, conf.OpenSquare.Choices)
	require.Equal(t, 720*time.Hour, conf.OpenSquare.VotingPeriod)
	require.False(t, conf.Redis.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"Syncer": {"Interval": "5m", "PageSize": 10},
		"OpenSquare": {"Space": "test-space"}
	}`
	require.Nil(t, os.WriteFile(path, []byte(content), 0o600))

	conf, err := Load(path)
	require.Nil(t, err)
	require.Equal(t, 5*time.Minute, conf.Syncer.Interval)
	require.Equal(t, 10, conf.Syncer.PageSize)
	require.Equal(t, "test-space", conf.OpenSquare.Space)

	// Untouched keys keep their defaults
	require.Equal(t, "https://voting.opensquare.io", conf.OpenSquare.Endpoint)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SYNCER_OPEN_SQUARE_SPACE", "env-space")
	t.Setenv("SYNCER_SYNCER_INTERVAL", "1m")
	t.Setenv("SYNCER_OPEN_SQUARE_WHITELIST", "a,b,c")

	conf := Default()
	require.Equal(t, "env-space", conf.OpenSquare.Space)
	require.Equal(t, time.Minute, conf.Syncer.Interval)
	require.Equal(t, []string{"a", "b", "c"}, conf.OpenSquare.Whitelist)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.json")
	require.NotNil(t, err)
}
