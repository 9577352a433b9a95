package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HACKTWIN_PROVIDER", "HACKTWIN_API_KEY", "HACKTWIN_MODEL", "HACKTWIN_BASE_URL",
		"HACKTWIN_ADDR", "HACKTWIN_LOG_LEVEL", "HACKTWIN_SESSION_TTL", "HACKTWIN_REQUEST_TIMEOUT",
		"GEMINI_API_KEY", "GOOGLE_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, ":8501", cfg.Addr)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Provider = "ollama"
	cfg.Model = "llama3.2"
	cfg.SessionTTL = time.Hour

	require.NoError(t, cfg.Save(path))
	assert.True(t, Exists(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: anthropic\nsession_ttl: 30m\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, ":8501", cfg.Addr)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: [unterminated"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HACKTWIN_PROVIDER", "groq")
	t.Setenv("HACKTWIN_API_KEY", "k-123")
	t.Setenv("HACKTWIN_ADDR", ":9000")
	t.Setenv("HACKTWIN_SESSION_TTL", "45m")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "groq", cfg.Provider)
	assert.Equal(t, "k-123", cfg.APIKey)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
}

func TestApplyEnvGeminiKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "google-key", cfg.APIKey)

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	cfg = DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "gemini-key", cfg.APIKey)
}

func TestApplyEnvGeminiFallbackOnlyForGemini(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg := DefaultConfig()
	cfg.Provider = "openai"
	require.NoError(t, cfg.ApplyEnv())
	assert.Empty(t, cfg.APIKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"lowercase level", func(c *Config) { c.LogLevel = "debug" }, false},
		{"unknown provider", func(c *Config) { c.Provider = "nope" }, true},
		{"empty provider", func(c *Config) { c.Provider = "" }, true},
		{"bad level", func(c *Config) { c.LogLevel = "LOUD" }, true},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, true},
		{"empty addr", func(c *Config) { c.Addr = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
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

func TestNeedsSetup(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.NeedsSetup())

	cfg.APIKey = "x"
	assert.False(t, cfg.NeedsSetup())

	cfg = DefaultConfig()
	cfg.Provider = "ollama"
	assert.False(t, cfg.NeedsSetup())
}

func TestResolveWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("HACKTWIN_PROVIDER", "ollama")

	cfg, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Provider)
}

func TestGetProvider(t *testing.T) {
	assert.NotNil(t, GetProvider("gemini"))
	assert.Nil(t, GetProvider("bogus"))
	assert.Equal(t, "gemini", ProviderIDs()[0])
}
