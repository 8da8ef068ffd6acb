package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/hgraph", got)
	})

	t.Run("falls back to ~/.config when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "hgraph"), got)
	})

	t.Run("home lookup failure is returned", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		orig := platformDir.homeDir
		t.Cleanup(func() { platformDir.homeDir = orig })
		platformDir.homeDir = func() (string, error) { return "", errors.New("no home") }

		_, err := DefaultConfigDir()
		assert.EqualError(t, err, "no home")
	})
}

func TestDefaultConfigDir_Darwin(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("darwin-only test")
	}

	got, err := DefaultConfigDir()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Library", "Application Support", "hgraph"), got)
}

func TestResolveConfigDir(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		envVal  string
		wantSub string // substring the result must contain
	}{
		{
			name:    "flag wins over env",
			flag:    "/explicit/config",
			envVal:  "/env/config",
			wantSub: "/explicit/config",
		},
		{
			name:    "env wins when flag empty",
			flag:    "",
			envVal:  "/env/config",
			wantSub: "/env/config",
		},
		{
			name:    "platform default when both empty",
			flag:    "",
			envVal:  "",
			wantSub: "hgraph",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Contains(t, got, tt.wantSub)
		})
	}
}

func TestResolveSchema(t *testing.T) {
	tests := []struct {
		name        string
		flag        string
		configValue string
		envVal      string
		want        string
	}{
		{
			name:        "flag wins over all",
			flag:        "/flag/schema.yaml",
			configValue: "/config/schema.yaml",
			envVal:      "/env/schema.yaml",
			want:        "/flag/schema.yaml",
		},
		{
			name:        "config.yaml wins over env",
			configValue: "/config/schema.yaml",
			envVal:      "/env/schema.yaml",
			want:        "/config/schema.yaml",
		},
		{
			name:        "relative config value is under the config dir",
			configValue: "types/family.yaml",
			want:        "/etc/hgraph/types/family.yaml",
		},
		{
			name:   "env wins when flag and config empty",
			envVal: "/env/schema.yaml",
			want:   "/env/schema.yaml",
		},
		{
			name: "config dir default when all empty",
			want: "/etc/hgraph/schema.yaml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvSchema, tt.envVal)
			got, err := ResolveSchema(tt.flag, tt.configValue, "/etc/hgraph")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_AbsolutePath(t *testing.T) {
	t.Run("relative config flag becomes absolute", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		got, err := ResolveConfigDir("relative/path")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})

	t.Run("relative config env becomes absolute", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "relative/env")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})

	t.Run("relative schema flag becomes absolute", func(t *testing.T) {
		t.Setenv(EnvSchema, "")
		got, err := ResolveSchema("schema.yaml", "", "/etc/hgraph")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, filepath.Join("/etc/hgraph", "config.yaml"), ConfigFile("/etc/hgraph"))
}
