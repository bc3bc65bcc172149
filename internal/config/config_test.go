package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.DefaultFlavor)
	assert.Zero(t, cfg.HTTPTimeoutSeconds)
	assert.Empty(t, cfg.Flavors)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	var missing *MissingConfigError
	assert.ErrorAs(t, err, &missing)
}

func TestLoadFromEnvVar(t *testing.T) {
	path := writeConfig(t, "defaultFlavor: datacite-4.5\n")
	t.Setenv(ConfigEnvVar, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "datacite-4.5", cfg.DefaultFlavor)
}

func TestLoadFullConfig(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
defaultFlavor: pidinst
httpTimeoutSeconds: 30
flavors:
  datacite-4.4:
    baseUrl: "https://mirror.example.com/kernel-4.4/"
    rootDocument: "metadata.xsd"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pidinst", cfg.DefaultFlavor)
	assert.Equal(t, 30, cfg.HTTPTimeoutSeconds)

	fc, ok := cfg.FlavorOverride("datacite-4.4")
	require.True(t, ok)
	assert.Equal(t, "https://mirror.example.com/kernel-4.4/", fc.BaseURL)
	assert.Equal(t, "metadata.xsd", fc.RootDocument)

	_, ok = cfg.FlavorOverride("pidinst")
	assert.False(t, ok)
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "flavors: [not: a map\n")

	_, err := Load(path)
	require.Error(t, err)
	var invalid *InvalidYAMLError
	assert.ErrorAs(t, err, &invalid)
}

func TestLoadRejectsNonHTTPBaseURL(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
flavors:
  pidinst:
    baseUrl: "ftp://mirror.example.com/pidinst/"
`)

	_, err := Load(path)
	require.Error(t, err)
	var invalid *InvalidURLError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Property, "pidinst")
}

func TestLoadRejectsNegativeTimeout(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "httpTimeoutSeconds: -5\n")

	_, err := Load(path)
	require.Error(t, err)
	var invalid *InvalidTimeoutError
	assert.ErrorAs(t, err, &invalid)
}

func TestHTTPClient(t *testing.T) {
	t.Parallel()
	t.Run("no timeout by default", func(t *testing.T) {
		t.Parallel()
		c := (&Config{}).HTTPClient()
		assert.Zero(t, c.Timeout)
	})

	t.Run("configured timeout", func(t *testing.T) {
		t.Parallel()
		c := (&Config{HTTPTimeoutSeconds: 10}).HTTPClient()
		assert.Equal(t, 10*time.Second, c.Timeout)
	})
}
