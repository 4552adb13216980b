package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadConfig_ParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
db: /tmp/daybook.db
http_timeout: 30s
subscribe_url: https://example.com/calendar.json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/daybook.db", cfg.Database)
	assert.Equal(t, "30s", cfg.HTTPTimeout)
	assert.Equal(t, "https://example.com/calendar.json", cfg.SubscribeURL)
}

func TestLoadConfig_BrokenYAMLIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: [unterminated"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err, "a broken config should be reported, not silently ignored")
}

func TestConfig_FetchTimeout(t *testing.T) {
	d, err := Config{}.fetchTimeout()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, d, "default timeout")

	d, err = Config{HTTPTimeout: "2m"}.fetchTimeout()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)

	_, err = Config{HTTPTimeout: "soonish"}.fetchTimeout()
	assert.Error(t, err)
}
