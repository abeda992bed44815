// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHolder(t *testing.T, content string) (*ConfigHolder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loader := NewLoader(path, "test")
	initial, err := loader.Load()
	require.NoError(t, err)
	return NewConfigHolder(initial, loader, path), path
}

func TestConfigHolder_Get(t *testing.T) {
	h, _ := newHolder(t, "page:\n  title: First\n")
	assert.Equal(t, "First", h.Get().Page.Title)
}

func TestConfigHolder_ReloadAppliesAndNotifies(t *testing.T) {
	h, path := newHolder(t, "page:\n  title: First\n")

	ch := make(chan AppConfig, 1)
	h.RegisterListener(ch)

	require.NoError(t, os.WriteFile(path, []byte("page:\n  title: Second\n"), 0o600))
	require.NoError(t, h.Reload(context.Background()))

	assert.Equal(t, "Second", h.Get().Page.Title)
	select {
	case got := <-ch:
		assert.Equal(t, "Second", got.Page.Title)
	default:
		t.Fatal("listener was not notified")
	}
}

func TestConfigHolder_ReloadWarnsOnceForListenerChange(t *testing.T) {
	h, path := newHolder(t, "server:\n  listenAddr: 127.0.0.1:8080\n")
	var buf bytes.Buffer
	h.logger = zerolog.New(&buf)

	require.NoError(t, os.WriteFile(path, []byte("server:\n  listenAddr: 127.0.0.1:8081\n"), 0o600))
	require.NoError(t, h.Reload(context.Background()))
	assert.Equal(t, 1, strings.Count(buf.String(), "config.restart_required"))

	buf.Reset()
	require.NoError(t, os.WriteFile(path, []byte("server:\n  listenAddr: 127.0.0.1:8081\npage:\n  title: Annað\n"), 0o600))
	require.NoError(t, h.Reload(context.Background()))
	assert.NotContains(t, buf.String(), "config.restart_required")
}

func TestConfigHolder_ReloadKeepsOldOnError(t *testing.T) {
	h, path := newHolder(t, "page:\n  title: First\n")

	ch := make(chan AppConfig, 1)
	h.RegisterListener(ch)

	require.NoError(t, os.WriteFile(path, []byte("page:\n  titel: typo\n"), 0o600))
	err := h.Reload(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownConfigField)
	assert.Equal(t, "First", h.Get().Page.Title)
	assert.Empty(t, ch, "failed reload must not notify")
}

func TestConfigHolder_FullListenerDoesNotBlock(t *testing.T) {
	h, _ := newHolder(t, "")

	ch := make(chan AppConfig) // unbuffered, never read
	h.RegisterListener(ch)

	done := make(chan error, 1)
	go func() { done <- h.Reload(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Reload blocked on a full listener")
	}
}

func TestConfigHolder_WatcherReloadsOnWrite(t *testing.T) {
	h, path := newHolder(t, "page:\n  title: First\n")
	h.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, h.StartWatcher(ctx))
	defer h.Stop()

	require.NoError(t, os.WriteFile(path, []byte("page:\n  title: Watched\n"), 0o600))

	require.Eventually(t, func() bool {
		return h.Get().Page.Title == "Watched"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestConfigHolder_WatcherIgnoresOtherFiles(t *testing.T) {
	h, path := newHolder(t, "page:\n  title: First\n")
	h.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, h.StartWatcher(ctx))
	defer h.Stop()

	other := filepath.Join(filepath.Dir(path), "notes.yaml")
	require.NoError(t, os.WriteFile(other, []byte("page:\n  title: Other\n"), 0o600))

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, "First", h.Get().Page.Title)
}

func TestConfigHolder_StartWatcherWithoutFile(t *testing.T) {
	h := NewConfigHolder(Defaults(), NewLoader("", "test"), "")
	require.NoError(t, h.StartWatcher(context.Background()))
	h.Stop()
}
