package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cubectl.yaml"), []byte(body), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cubectl")

	cfg, err := Load(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Size:        3,
		Workers:     8,
		Ops:         1000,
		ShowEvery:   10,
		CancelRatio: 0.05,
	}, cfg)
	assert.FileExists(t, filepath.Join(dir, "cubectl.yaml"))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "size: 5\nworkers: 2\ndb: /tmp/runs.db\n")

	cfg, err := Load(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Size)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "/tmp/runs.db", cfg.DBPath)
	assert.Equal(t, 1000, cfg.Ops)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "size: 5\n")
	t.Setenv("CUBECTL_SIZE", "7")
	t.Setenv("CUBECTL_SHOW_EVERY", "3")

	cfg, err := Load(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Size)
	assert.Equal(t, 3, cfg.ShowEvery)
}

func TestChangedFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "size: 5\nworkers: 2\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("size", 3, "")
	flags.Int("workers", 8, "")
	flags.Float64("cancel-ratio", 0.05, "")
	require.NoError(t, flags.Parse([]string{"--size", "9", "--cancel-ratio", "0.5"}))

	cfg, err := Load(dir, flags)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Size)
	assert.Equal(t, 2, cfg.Workers, "unset flag must not override the file")
	assert.Equal(t, 0.5, cfg.CancelRatio)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero size", "size: 0\n"},
		{"no workers", "workers: 0\n"},
		{"ratio above one", "cancel_ratio: 1.5\n"},
		{"negative show_every", "show_every: -1\n"},
		{"malformed yaml", "size: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)

			_, err := Load(dir, nil)
			assert.Error(t, err)
		})
	}
}
