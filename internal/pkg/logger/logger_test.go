package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lookup.log")

	log, err := New(Options{File: path, MaxSizeMB: 1})
	require.NoError(t, err)
	log.Info("source loaded")
	log.Debug("not written in production mode")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"source loaded"`)
	assert.NotContains(t, string(data), "not written")
}

func TestNew_Stderr(t *testing.T) {
	log, err := New(Options{Development: true})
	require.NoError(t, err)
	assert.NotNil(t, log)
}
