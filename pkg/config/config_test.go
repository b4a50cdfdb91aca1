package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arquivao.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.PhysicalLines)
	assert.ElementsMatch(t, []string{"node_modules", ".next", ".git", ".vercel", ".turbo", "__pycache__"}, cfg.Exclusions.Dirs)
	assert.ElementsMatch(t, []string{"package-lock.json", "yarn.lock", "pnpm-lock.yaml", ".DS_Store"}, cfg.Exclusions.Files)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("overrides only the keys present", func(t *testing.T) {
		path := writeConfig(t, `
output: merged.txt
physical_lines: true
exclusions:
  files: [secrets.env]
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "merged.txt", cfg.Output)
		assert.True(t, cfg.PhysicalLines)
		assert.Equal(t, []string{"secrets.env"}, cfg.Exclusions.Files)
		assert.Equal(t, DefaultExclusions().Dirs, cfg.Exclusions.Dirs)
	})

	t.Run("expands environment variables", func(t *testing.T) {
		t.Setenv("ARQUIVAO_OUT", "from-env.txt")
		path := writeConfig(t, "output: ${ARQUIVAO_OUT}\n")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env.txt", cfg.Output)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "exclusions: [unterminated\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("invalid exclusion", func(t *testing.T) {
		path := writeConfig(t, "exclusions:\n  dirs: [src/vendor]\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exclusions.dirs")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty output", mutate: func(c *Config) { c.Output = "" }, wantErr: true},
		{name: "blank dir", mutate: func(c *Config) { c.Exclusions.Dirs = []string{" "} }, wantErr: true},
		{name: "file with separator", mutate: func(c *Config) { c.Exclusions.Files = []string{`a\b`} }, wantErr: true},
		{name: "empty lists", mutate: func(c *Config) { c.Exclusions = Exclusions{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
