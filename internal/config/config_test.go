package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsZeroValue(t *testing.T) {
	cfg := Default()
	assert.Equal(t, int64(0), cfg.GC.ThresholdBytes)
	assert.Equal(t, 0.0, cfg.GC.GrowthFactor)
	assert.Equal(t, int64(0), cfg.RandomSeed)
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jsi.yaml")
	contents := "gc:\n  thresholdBytes: 65536\n  growthFactor: 1.5\nrandomSeed: 42\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(65536), cfg.GC.ThresholdBytes)
	assert.Equal(t, 1.5, cfg.GC.GrowthFactor)
	assert.Equal(t, int64(42), cfg.RandomSeed)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/jsi.yaml")
	assert.Error(t, err)
}
