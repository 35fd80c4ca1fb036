package log

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type bufferSyncer struct{ bytes.Buffer }

func (*bufferSyncer) Sync() error { return nil }

func TestInitLoggerWithWriteSyncer(t *testing.T) {
	var buf bufferSyncer

	cfg := &Config{Level: "warn", Format: "json", DisableCaller: true}
	lg, props, err := InitLoggerWithWriteSyncer(cfg, &buf)
	require.NoError(t, err)

	lg.Info("hidden")
	lg.Warn("shown", zap.String("field", "age"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"field":"age"`)

	props.Level.SetLevel(zapcore.DebugLevel)
	lg.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestInitLoggerWithWriteSyncer_BadLevel(t *testing.T) {
	_, _, err := InitLoggerWithWriteSyncer(&Config{Level: "loud"}, &bufferSyncer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestInitLogger_NoOutputs(t *testing.T) {
	lg, props, err := InitLogger(&Config{Level: "info"})
	require.NoError(t, err)
	assert.NotNil(t, lg)
	assert.NotNil(t, props)
}

func TestInitLogger_File(t *testing.T) {
	dir := t.TempDir()

	lg, _, err := InitLogger(&Config{Level: "info", File: FileLogConfig{RootPath: dir, Filename: "engine.log"}})
	require.NoError(t, err)
	lg.Info("to file")
	require.NoError(t, lg.Sync())

	assert.FileExists(t, filepath.Join(dir, "engine.log"))
}

func TestInitLogger_DirectoryAsFile(t *testing.T) {
	dir := t.TempDir()

	_, _, err := InitLogger(&Config{Level: "info", File: FileLogConfig{Filename: dir}})
	require.Error(t, err)
}

func TestGlobals(t *testing.T) {
	prevL := L()
	prevP := _globalP.Load().(*ZapProperties)
	t.Cleanup(func() { ReplaceGlobals(prevL, prevP) })

	var buf bufferSyncer
	lg, props, err := InitLoggerWithWriteSyncer(&Config{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	ReplaceGlobals(lg, props)
	Debug("dropped")
	SetLevel(zapcore.DebugLevel)
	assert.Equal(t, zapcore.DebugLevel, GetLevel())
	Debug("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}
