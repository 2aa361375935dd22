package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps Load away from any animefmt.yaml on the developer's machine.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.ErrorIs(t, cfg.RequireToken(), ErrMissingToken)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ANIMEFMT_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("ANIMEFMT_SESSION_TTL", "30m")
	t.Setenv("ANIMEFMT_SYNOPSIS_POLICY", "truncate")
	t.Setenv("ANIMEFMT_CACHE_REDIS_DB", "2")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "truncate", cfg.Synopsis.Policy)
	assert.Equal(t, 2, cfg.Cache.RedisDB)
	assert.NoError(t, cfg.RequireToken())
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `
telegram:
  token: from-file
anilist:
  per_page: 25
branding:
  name: My Channel
  url: https://t.me/mychannel
log:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Telegram.Token)
	assert.Equal(t, 25, cfg.AniList.PerPage)
	assert.Equal(t, "My Channel", cfg.Branding.Name)
	assert.Equal(t, "json", cfg.Log.Format)
	// Untouched keys keep their defaults.
	assert.Equal(t, 10*time.Second, cfg.AniList.Timeout)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "animefmt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  addr: \":9000\"\n"), 0o600))
	t.Setenv("ANIMEFMT_HTTP_ADDR", ":9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.HTTP.Addr)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("anilist:\n  per_page: 500\n"), 0o600))
	_, err = Load(path)
	assert.ErrorContains(t, err, "anilist.per_page")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"negative poll timeout", func(c *Config) { c.Telegram.PollTimeout = -1 }, "telegram.poll_timeout"},
		{"zero anilist timeout", func(c *Config) { c.AniList.Timeout = 0 }, "anilist.timeout"},
		{"unknown policy", func(c *Config) { c.Synopsis.Policy = "summarize" }, "synopsis.policy"},
		{"zero line width", func(c *Config) { c.Synopsis.LineWidth = 0 }, "synopsis.line_width"},
		{"negative session ttl", func(c *Config) { c.Session.TTL = -time.Second }, "session.ttl"},
		{"zero session ttl", func(c *Config) { c.Session.TTL = 0 }, ""},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "animefmt.yaml")

	require.NoError(t, WriteDefault(path, false))
	assert.Error(t, WriteDefault(path, false), "must not overwrite without force")
	require.NoError(t, WriteDefault(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestRenderer(t *testing.T) {
	cfg := Default()
	cfg.Branding.Name = "My Channel"

	r, err := cfg.Renderer()
	require.NoError(t, err)
	assert.Contains(t, r.Attribution(), "My Channel")

	cfg.Synopsis.Policy = "nope"
	_, err = cfg.Renderer()
	assert.Error(t, err)
}
