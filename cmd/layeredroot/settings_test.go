package main

import (
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := loadSettings(afero.NewMemMapFs(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", s.Listen)
	assert.Equal(t, "info", s.LogLevel)
	assert.True(t, *s.AccessLog)
}

func TestLoadSettingsPartialFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/etc/settings.yaml",
		[]byte("listen: \":9090\"\naccess_log: false\n"), 0644))

	s, err := loadSettings(fsys, "/etc/settings.yaml")
	require.NoError(t, err)

	assert.Equal(t, ":9090", s.Listen)
	assert.Equal(t, "info", s.LogLevel, "unset field keeps its default")
	assert.False(t, *s.AccessLog)
}

func TestLoadSettingsBadYAML(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/etc/settings.yaml", []byte(":\n:::"), 0644))

	_, err := loadSettings(fsys, "/etc/settings.yaml")
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"Info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		s := Settings{LogLevel: name}
		got, err := s.slogLevel()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := Settings{LogLevel: "loud"}.slogLevel()
	assert.Error(t, err)
}
