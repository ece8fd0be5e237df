package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/logging"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inkwell.toml")
	require.NoError(t, os.WriteFile(path, []byte("[highlight]\ntheme = \"monokai\"\n"), 0o644))

	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond), WithWatcherLogger(logging.Nop()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	got := make(chan *Config, 4)
	w.OnChange(func(cfg *Config) { got <- cfg })

	require.NoError(t, os.WriteFile(path, []byte("[highlight]\ntheme = \"dracula\"\n"), 0o644))

	select {
	case cfg := <-got:
		assert.Equal(t, "dracula", cfg.Highlight.Theme)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcherIgnoresInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inkwell.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := NewWatcher(path, WithDebounce(10*time.Millisecond), WithWatcherLogger(logging.Nop()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	got := make(chan *Config, 4)
	w.OnChange(func(cfg *Config) { got <- cfg })

	require.NoError(t, os.WriteFile(path, []byte("[editor\n"), 0o644))

	select {
	case <-got:
		t.Fatal("handler called for unparsable config")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkwell.toml")
	w, err := NewWatcher(path, WithWatcherLogger(logging.Nop()))
	require.NoError(t, err)
	assert.Equal(t, path, w.Path())

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
