package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGet_BeforeInitReturnsNop(t *testing.T) {
	globalLogger = nil

	l := Get()

	require.NotNil(t, l)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestInit_Development(t *testing.T) {
	t.Cleanup(func() { globalLogger = nil })

	require.NoError(t, Init("development", "debug"))

	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))
}

func TestInit_ProductionRespectsLevel(t *testing.T) {
	t.Cleanup(func() { globalLogger = nil })

	require.NoError(t, Init("production", "warn"))

	assert.False(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Get().Core().Enabled(zapcore.WarnLevel))
}

func TestInit_InvalidLevelKeepsDefault(t *testing.T) {
	t.Cleanup(func() { globalLogger = nil })

	require.NoError(t, Init("production", "loud"))

	assert.True(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Get().Core().Enabled(zapcore.DebugLevel))
}
