package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvStorageURL, "")
	t.Setenv(EnvGraphQLURL, "")
	t.Setenv(EnvAPIKey, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "app.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "checkered-texture.png", cfg.Storage.TextureKey)
	assert.False(t, cfg.Storage.ValidateObjectExistence)
	assert.Equal(t, float32(10), cfg.Scene.RPM)
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	yml := `
window:
  width: 800
  height: 600
storage:
  base_url: https://bucket.example.com
  validate_object_existence: true
  timeout: 5s
api:
  graphql_url: https://file.example.com/graphql
scene:
  show_box: true
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))
	t.Setenv(EnvStorageURL, "")
	t.Setenv(EnvGraphQLURL, "https://env.example.com/graphql")
	t.Setenv(EnvAPIKey, "da2-secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, 60, cfg.Window.TargetFPS, "unset keys keep defaults")
	assert.Equal(t, "https://bucket.example.com", cfg.Storage.BaseURL)
	assert.True(t, cfg.Storage.ValidateObjectExistence)
	assert.Equal(t, 5*time.Second, cfg.Storage.Timeout)
	assert.Equal(t, "https://env.example.com/graphql", cfg.API.GraphQLURL)
	assert.Equal(t, "da2-secret", cfg.API.APIKey)
	assert.True(t, cfg.Scene.ShowBox)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("window: [unclosed"), 0644))
	_, err := Load(bad)
	assert.Error(t, err)

	neg := filepath.Join(dir, "neg.yaml")
	require.NoError(t, os.WriteFile(neg, []byte("scene:\n  rpm: -1\n"), 0644))
	_, err = Load(neg)
	assert.ErrorContains(t, err, "rpm")
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvStorageURL, "")
	t.Setenv(EnvGraphQLURL, "")
	t.Setenv(EnvAPIKey, "")

	path := filepath.Join(t.TempDir(), "nested", "app.yaml")
	cfg := Default()
	cfg.Debug.ShowFPS = true
	cfg.Storage.BaseURL = "https://bucket.example.com"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
