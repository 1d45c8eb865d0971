package app

import (
	"bytes"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/iov-one/settle/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	conf, err := loadConfig(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)
	assert.Equal(t, Config{ChainID: "settle-local", LogLevel: "info"}, conf)

	conf, err = loadConfig(env.Options{Environment: map[string]string{
		"SETTLE_CHAIN_ID":  "test-chain",
		"SETTLE_DEBUG":     "true",
		"SETTLE_LOG_LEVEL": "error",
	}})
	require.NoError(t, err)
	assert.Equal(t, Config{ChainID: "test-chain", Debug: true, LogLevel: "error"}, conf)

	_, err = loadConfig(env.Options{Environment: map[string]string{"SETTLE_DEBUG": "maybe"}})
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)
}

func TestConfigLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Config{ChainID: "c1", LogLevel: "error"}.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Error("shown", "key", "value")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "chain=c1")

	_, err = Config{LogLevel: "loud"}.NewLogger(&buf)
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)
}
