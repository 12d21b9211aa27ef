package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "narrative.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Data.Dir)
	assert.Equal(t, "", cfg.Data.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Data.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 3, cfg.Export.Concurrency)
	assert.Equal(t, 90, cfg.Export.JPEGQuality)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
data:
  base_url: https://example.org/narrative/data/
  timeout: 2s
server:
  address: 127.0.0.1:9000
logging:
  level: debug
  format: console
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.org/narrative/data/", cfg.Data.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Data.Timeout)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("NARRATIVE_SERVER_ADDRESS", ":9999")
	t.Setenv("NARRATIVE_EXPORT_CONCURRENCY", "5")

	cfg, err := Load(writeConfig(t, "logging:\n  level: warn\n"))
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, 5, cfg.Export.Concurrency)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"level", "logging:\n  level: loud\n", "invalid logging level"},
		{"format", "logging:\n  format: xml\n", "invalid logging format"},
		{"concurrency", "export:\n  concurrency: 0\n", "invalid export concurrency"},
		{"quality", "export:\n  jpeg_quality: 101\n", "invalid jpeg quality"},
		{"timeout", "data:\n  timeout: 0s\n", "invalid data timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (testing.T.Chdir is unavailable before Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
