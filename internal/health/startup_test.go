// SPDX-License-Identifier: MIT

package health

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/dagskra/internal/config"
)

func TestPerformStartupChecks(t *testing.T) {
	base := func(t *testing.T) config.AppConfig {
		cfg := config.Defaults()
		cfg.Server.AssetsDir = t.TempDir()
		return cfg
	}

	t.Run("defaults pass", func(t *testing.T) {
		require.NoError(t, PerformStartupChecks(base(t)))
	})

	t.Run("missing assets only warns", func(t *testing.T) {
		cfg := base(t)
		cfg.Server.AssetsDir = filepath.Join(cfg.Server.AssetsDir, "missing")
		assert.NoError(t, PerformStartupChecks(cfg))
	})

	t.Run("assets path is a file", func(t *testing.T) {
		cfg := base(t)
		p := filepath.Join(cfg.Server.AssetsDir, "file")
		require.NoError(t, os.WriteFile(p, nil, 0o600))
		cfg.Server.AssetsDir = p
		assert.ErrorContains(t, PerformStartupChecks(cfg), "not a directory")
	})

	t.Run("bad listen address", func(t *testing.T) {
		cfg := base(t)
		cfg.Server.ListenAddr = "8080"
		assert.ErrorContains(t, PerformStartupChecks(cfg), "server listen address")
	})

	t.Run("bad metrics address when enabled", func(t *testing.T) {
		cfg := base(t)
		cfg.Metrics.Enabled = true
		cfg.Metrics.ListenAddr = "127.0.0.1:http-alt"
		assert.ErrorContains(t, PerformStartupChecks(cfg), "metrics listen port")
	})

	t.Run("bad upstream scheme", func(t *testing.T) {
		cfg := base(t)
		cfg.Upstream.BaseURL = "ftp://apis.is/tv/ruv"
		assert.ErrorContains(t, PerformStartupChecks(cfg), "scheme")
	})
}
