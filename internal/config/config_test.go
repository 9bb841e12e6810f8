package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PRIMERTAIL_DATA_DIR", t.TempDir())

	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 55.0, c.TargetTm)
	assert.Equal(t, "1000nM", c.FwdConc)
	assert.Equal(t, "50mM", c.SaltConc)
	assert.Equal(t, 13, c.MinLength)
	assert.Equal(t, "bresluc", c.Formula)
	assert.Equal(t, 35, c.Overlap)
	assert.Equal(t, 40, c.MaxLink)
	assert.Equal(t, "text", c.LogFormat)
}

func TestFromEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PRIMERTAIL_DATA_DIR", dir)
	t.Setenv("PRIMERTAIL_TARGET_TM", "62.5")
	t.Setenv("PRIMERTAIL_OVERLAP", "20")
	t.Setenv("PRIMERTAIL_FORMULA", "santalucia")

	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 62.5, c.TargetTm)
	assert.Equal(t, 20, c.Overlap)
	assert.Equal(t, "santalucia", c.Formula)
	assert.Equal(t, filepath.Join(dir, "primers.db"), c.DBPath())
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("PRIMERTAIL_DATA_DIR", t.TempDir())

	t.Setenv("PRIMERTAIL_MIN_LENGTH", "0")
	_, err := FromEnv()
	require.Error(t, err)

	t.Setenv("PRIMERTAIL_MIN_LENGTH", "13")
	t.Setenv("PRIMERTAIL_LOG_FORMAT", "xml")
	_, err = FromEnv()
	require.ErrorContains(t, err, "LOG_FORMAT")

	t.Setenv("PRIMERTAIL_LOG_FORMAT", "text")
	t.Setenv("PRIMERTAIL_OVERLAP", "lots")
	_, err = FromEnv()
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PRIMERTAIL_MAX_LINK=12\nPRIMERTAIL_DATA_DIR="+dir+"\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("PRIMERTAIL_MAX_LINK")
		_ = os.Unsetenv("PRIMERTAIL_DATA_DIR")
	})

	c, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, 12, c.MaxLink)
	assert.Equal(t, dir, c.DataDir)
}

func TestLoadMissingFileIsFine(t *testing.T) {
	t.Setenv("PRIMERTAIL_DATA_DIR", t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
}
