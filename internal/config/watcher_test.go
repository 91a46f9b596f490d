package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/pilltoast/internal/toast"
)

func TestWatcher_ReloadsValidChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[defaults]\nlocation = \"bottom\"\n"), 0o644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	w.SetDebounce(50 * time.Millisecond)

	reloaded := make(chan *Config, 4)
	failed := make(chan error, 4)
	w.SetReloadCallback(func(c *Config) { reloaded <- c })
	w.SetErrorCallback(func(err error) { failed <- err })

	initial := DefaultConfig()
	require.NoError(t, w.Start(context.Background(), initial))
	defer w.Stop()
	assert.Same(t, initial, w.Current())

	require.NoError(t, os.WriteFile(path, []byte("[defaults]\nlocation = \"top\"\n"), 0o644))
	select {
	case c := <-reloaded:
		assert.Equal(t, toast.Top, c.Defaults.Location)
		assert.Same(t, c, w.Current())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	require.NoError(t, os.WriteFile(path, []byte("[audio]\nvolume = 500\n"), 0o644))
	select {
	case err := <-failed:
		assert.Error(t, err)
		assert.Equal(t, toast.Top, w.Current().Defaults.Location, "invalid configs are not adopted")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload error")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "config.toml"), nil)
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background(), DefaultConfig()))
	w.Stop()
	w.Stop()
}
