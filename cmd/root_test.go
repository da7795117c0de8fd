package cmd

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig(t *testing.T) {
	t.Setenv("RECRUIT_API_URL", "http://ranker:9000")

	viper.Set("timeout", "5s")
	viper.Set("semantic-weight", "0.7")
	viper.Set("blind-mode", true)
	t.Cleanup(viper.Reset)

	config, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://ranker:9000", config.APIURL)
	assert.Equal(t, 5*time.Second, config.Timeout)
	assert.InDelta(t, 0.7, config.SemanticWeight, 1e-9)
	assert.True(t, config.BlindMode)
	assert.False(t, config.StrictFileTypes)
}
