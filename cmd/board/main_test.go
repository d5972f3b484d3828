package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionFlag(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "board dev (commit: none, built: unknown)\n", out.String())
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[store]\npath = \"/from/file.db\"\ndriver = \"sqlite3\"\n"), 0644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--driver", "sqlite", "--debug"}))

	f := flags{configPath: cfgPath, driver: "sqlite", debug: true}
	cfg, err := loadConfig(cmd, f)
	require.NoError(t, err)

	assert.Equal(t, "/from/file.db", cfg.Store.Path)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.True(t, cfg.Log.Debug)
}

func TestLoadConfigDBFlag(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--db", "/tmp/other.db"}))

	cfg, err := loadConfig(cmd, flags{dbPath: "/tmp/other.db"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Store.Path)
	assert.Equal(t, "sqlite3", cfg.Store.Driver)
}

func TestRejectsArguments(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})

	assert.Error(t, cmd.Execute())
}
