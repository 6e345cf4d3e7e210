package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("GENELAB_DB sets pool path", func(t *testing.T) {
		t.Setenv("GENELAB_DB", "/tmp/pool.db")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/tmp/pool.db", cfg.Pool.Path)
	})

	t.Run("GENELAB_DB_DRIVER sets driver", func(t *testing.T) {
		t.Setenv("GENELAB_DB_DRIVER", "sqlite3")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "sqlite3", cfg.Pool.Driver)
	})

	t.Run("GENELAB_LOG_LEVEL sets level", func(t *testing.T) {
		t.Setenv("GENELAB_LOG_LEVEL", "error")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "error", cfg.Logging.Level)
	})

	t.Run("GENELAB_METRICS_ADDR sets addr", func(t *testing.T) {
		t.Setenv("GENELAB_METRICS_ADDR", ":9464")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, ":9464", cfg.Metrics.Addr)
	})

	t.Run("empty values are ignored", func(t *testing.T) {
		t.Setenv("GENELAB_DB", "")
		t.Setenv("GENELAB_DB_DRIVER", "")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, DefaultConfig().Pool, cfg.Pool)
	})
}

func TestEnvOverrides_WinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genelab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pool:\n  path: from-file.db\n"), 0644))
	t.Setenv("GENELAB_DB", "from-env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.Pool.Path)
}
