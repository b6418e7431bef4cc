package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_ProductionAndDevelopment(t *testing.T) {
	for _, env := range []string{"production", "development", "staging", ""} {
		log, err := New(env)
		require.NoError(t, err, "environment %q", env)
		require.NotNil(t, log)
		assert.NotNil(t, log.Check(zap.InfoLevel, "startup"))
	}
}

func TestNew_LevelFromEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	log, err := New("production")
	require.NoError(t, err)

	assert.Nil(t, log.Check(zap.InfoLevel, "suppressed"))
	assert.NotNil(t, log.Check(zap.ErrorLevel, "surfaced"))
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	log, err := New("production")
	require.NoError(t, err)

	assert.Nil(t, log.Check(zap.DebugLevel, "suppressed"))
	assert.NotNil(t, log.Check(zap.InfoLevel, "surfaced"))
}
