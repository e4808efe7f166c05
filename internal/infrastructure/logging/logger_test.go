package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		level   zapcore.Level
	}{
		{"default", DefaultConfig(), false, zapcore.InfoLevel},
		{"development", DevelopmentConfig(), false, zapcore.DebugLevel},
		{"warn", Config{Level: "warn"}, false, zapcore.WarnLevel},
		{"bad level", Config{Level: "loud"}, true, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level))
			assert.False(t, logger.Core().Enabled(tt.level-1))
		})
	}
}

func TestOutputFormats(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Output: &buf})
	require.NoError(t, err)
	logger.Info("calculation complete")
	require.NoError(t, logger.Sync())
	assert.Contains(t, buf.String(), `"message":"calculation complete"`)
	assert.Contains(t, buf.String(), `"level":"info"`)

	buf.Reset()
	logger, err = New(Config{Level: "debug", Development: true, Output: &buf})
	require.NoError(t, err)
	logger.Debug("parsed formula")
	require.NoError(t, logger.Sync())
	assert.Contains(t, buf.String(), "parsed formula")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestFromSettings(t *testing.T) {
	assert.True(t, FromSettings("error", false).Core().Enabled(zapcore.ErrorLevel))
	assert.False(t, FromSettings("error", false).Core().Enabled(zapcore.WarnLevel))
	assert.True(t, FromSettings("", true).Core().Enabled(zapcore.DebugLevel))
	assert.True(t, FromSettings("nonsense", false).Core().Enabled(zapcore.InfoLevel))
}
