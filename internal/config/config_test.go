package config_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/talis/internal/config"
	"github.com/KirkDiggler/talis/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, config.StorageRedis, cfg.Storage)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, "talis:", cfg.Namespace)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"TALIS_ENV":        "Production",
		"TALIS_STORAGE":    "memory",
		"TALIS_GRPC_PORT":  "9000",
		"TALIS_LOG_FORMAT": "json",
		"TALIS_LOG_LEVEL":  "debug",
	})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9000, cfg.GRPCPort)

	var buf bytes.Buffer
	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)
	logger.Debug("Dice rolled successfully", "roller", "d6")
	assert.Contains(t, buf.String(), `"roller":"d6"`)
}

func TestLoadRejectsBadPort(t *testing.T) {
	_, err := config.LoadFrom(map[string]string{"TALIS_GRPC_PORT": "many"})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestValidate(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"TALIS_STORAGE":   "sqlite",
		"TALIS_LOG_LEVEL": "loud",
		"TALIS_OUTPUT":    "xml",
	})
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	fields, ok := errors.GetMeta(err)[errors.MetaValidationErrors].(map[string][]string)
	require.True(t, ok)
	assert.Contains(t, fields, "TALIS_STORAGE")
	assert.Contains(t, fields, "TALIS_LOG_LEVEL")
	assert.Contains(t, fields, "TALIS_OUTPUT")
}
