package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"MBDASH_ADDR", "MBDASH_STATIC", "MBDASH_LOG_LEVEL", "MBDASH_STORE",
		"MBDASH_SQLITE_DSN", "MBDASH_TABLE_CACHE", "MBDASH_MAX_UPLOAD_MB"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, 64, cfg.TableCache)
	assert.Equal(t, int64(64<<20), cfg.MaxUploadBytes())
	require.NoError(t, cfg.Validate())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	t.Setenv("MBDASH_STORE", "redis")
	t.Setenv("MBDASH_LOG_LEVEL", "loud")
	t.Setenv("MBDASH_TABLE_CACHE", "many")
	t.Setenv("MBDASH_MAX_UPLOAD_MB", "0")

	err := FromEnv().Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MBDASH_TEST_DOTENV=sqlite\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("MBDASH_TEST_DOTENV") })

	require.NoError(t, LoadDotenv(path))
	assert.Equal(t, "sqlite", os.Getenv("MBDASH_TEST_DOTENV"))

	assert.Error(t, LoadDotenv(filepath.Join(t.TempDir(), "missing.env")))
}
