package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")
	l, flush := New("info", true, FileRotate{Enable: true, Filename: path, MaxSizeMB: 1})

	l.Info("hello", zap.String("k", "v"))
	l.Debug("dropped below level")
	flush()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"k":"v"`)
	assert.False(t, strings.Contains(string(b), "dropped below level"))
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	l, flush := New("loud", false, FileRotate{})
	defer flush()

	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestToStdLogger(t *testing.T) {
	l, flush := New("info", true, FileRotate{})
	defer flush()

	std, err := ToStdLogger(l, zapcore.InfoLevel)
	require.NoError(t, err)
	std.Printf("slow query %d", 1)
}
