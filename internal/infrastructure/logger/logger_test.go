package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewHonoursLevel(t *testing.T) {
	cases := []struct {
		cfg     *Config
		debugOn bool
		warnOn  bool
	}{
		{cfg: DefaultConfig(), debugOn: false, warnOn: true},
		{cfg: &Config{Level: "debug", Format: "console", Output: "stderr"}, debugOn: true, warnOn: true},
		{cfg: &Config{Level: "error", Format: "json", Output: "stdout"}, debugOn: false, warnOn: false},
	}

	for _, tc := range cases {
		t.Run(tc.cfg.Level+"/"+tc.cfg.Format, func(t *testing.T) {
			log, err := New(tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.debugOn, log.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tc.warnOn, log.Core().Enabled(zapcore.WarnLevel))
			assert.NotEmpty(t, tc.cfg.TimeFormat, "New fills in the time format")
		})
	}
}

func TestConsoleFormatIsNotJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")

	log, err := New(&Config{Level: "info", Format: "console", Output: path})
	require.NoError(t, err)
	log.Info("size picked")
	_ = Sync(log)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "size picked")
	assert.NotContains(t, string(data), `"msg":`)
}

func TestNew_TeesExtraCores(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)

	log, err := New(&Config{Level: "error", Format: "json", Output: "stderr"}, core)
	require.NoError(t, err)

	// the extra core keeps its own level
	log.Info("cart updated")
	assert.Equal(t, 1, recorded.FilterMessage("cart updated").Len())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{" Error ", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.level))
		})
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.log")

	log, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("written to file")
	_ = Sync(log)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written to file"`)
	assert.Contains(t, string(data), `"time":`)
}

func TestNew_UnwritablePath(t *testing.T) {
	_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)
}
