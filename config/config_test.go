package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	// Test with default values (without config file)
	provider := NewFileConfigProvider("nonexistent.yaml")
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)
	assert.NotNil(t, config)

	assert.Equal(t, "weather-dashboard", config.App.Name)
	assert.Equal(t, "1.0.0", config.App.Version)
	assert.Equal(t, "development", config.App.Env)
	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, 10, config.Server.ReadTimeout)
	assert.Equal(t, 10, config.Server.WriteTimeout)
	assert.Equal(t, 120, config.Server.IdleTimeout)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "IN", config.Cities.CountryIDs)
	assert.Equal(t, 600*time.Millisecond, config.Search.Debounce)

	// Without config file the provider keys stay empty
	assert.Empty(t, config.Weather.APIKey)
	assert.Empty(t, config.Cities.APIKey)
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	t.Setenv("APP_NAME", "test-app")
	t.Setenv("APP_VERSION", "2.0.0")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WEATHER_API_KEY", "weather-key")
	t.Setenv("CITIES_API_KEY", "cities-key")
	t.Setenv("SEARCH_DEBOUNCE", "250ms")

	provider := NewFileConfigProvider("nonexistent.yaml")
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)

	assert.Equal(t, "test-app", config.App.Name)
	assert.Equal(t, "2.0.0", config.App.Version)
	assert.Equal(t, "production", config.App.Env)
	assert.Equal(t, "9090", config.Server.Port)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "weather-key", config.Weather.APIKey)
	assert.Equal(t, "cities-key", config.Cities.APIKey)
	assert.Equal(t, 250*time.Millisecond, config.Search.Debounce)
}

func TestConfigIgnoresUnprefixedVariables(t *testing.T) {
	t.Setenv("NAME", "my-laptop")
	t.Setenv("ENV", "/home/u/.shrc")
	t.Setenv("PORT", "3000")
	t.Setenv("API_KEY", "shared-key")
	t.Setenv("TIMEOUT", "1s")
	t.Setenv("IDLE_TIMEOUT", "30m")
	t.Setenv("DEBOUNCE", "1ms")

	config, err := NewConfigWithProvider(NewFileConfigProvider("nonexistent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "weather-dashboard", config.App.Name)
	assert.Equal(t, "development", config.App.Env)
	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, 120, config.Server.IdleTimeout)
	assert.Empty(t, config.Weather.APIKey)
	assert.Empty(t, config.Cities.APIKey)
	assert.Equal(t, 10*time.Second, config.Weather.Timeout)
	assert.Equal(t, 30*time.Minute, config.Session.IdleTimeout)
	assert.Equal(t, 600*time.Millisecond, config.Search.Debounce)
}

func TestConfigSectionVariables(t *testing.T) {
	t.Setenv("WEATHER_API_KEY", "weather-key")
	t.Setenv("WEATHER_GEO_BASE_URL", "http://geo.test")
	t.Setenv("CITIES_API_KEY", "cities-key")
	t.Setenv("CITIES_COUNTRY_IDS", "IN,NP")
	t.Setenv("CITIES_PAGE_SIZE", "10")
	t.Setenv("SERVER_IDLE_TIMEOUT", "60")
	t.Setenv("SESSION_IDLE_TIMEOUT", "45m")
	t.Setenv("SESSION_SWEEP_INTERVAL", "2m")
	t.Setenv("OBSERVE_SENTRY_DSN", "https://key@sentry.test/1")
	t.Setenv("OBSERVE_ZIPKIN_URL", "http://zipkin.test:9411/api/v2/spans")

	config, err := NewConfigWithProvider(NewFileConfigProvider("nonexistent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "weather-key", config.Weather.APIKey)
	assert.Equal(t, "http://geo.test", config.Weather.GeoBaseURL)
	assert.Equal(t, "cities-key", config.Cities.APIKey)
	assert.Equal(t, "IN,NP", config.Cities.CountryIDs)
	assert.Equal(t, 10, config.Cities.PageSize)
	assert.Equal(t, 60, config.Server.IdleTimeout)
	assert.Equal(t, 45*time.Minute, config.Session.IdleTimeout)
	assert.Equal(t, 2*time.Minute, config.Session.SweepInterval)
	assert.Equal(t, "https://key@sentry.test/1", config.Observe.SentryDSN)
	assert.Equal(t, "http://zipkin.test:9411/api/v2/spans", config.Observe.ZipkinURL)
}

func TestConfigFileLoading(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlData := `
app:
  name: from-file
server:
  port: "7070"
cities:
  country_ids: FR
  page_size: 10
search:
  debounce: 1s
`
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0o600))

	config, err := NewConfigWithProvider(NewFileConfigProvider(path))
	require.NoError(t, err)

	assert.Equal(t, "from-file", config.App.Name)
	assert.Equal(t, "7070", config.Server.Port)
	assert.Equal(t, "FR", config.Cities.CountryIDs)
	assert.Equal(t, 10, config.Cities.PageSize)
	assert.Equal(t, time.Second, config.Search.Debounce)

	// Values absent from the file keep their defaults
	assert.Equal(t, "https://api.openweathermap.org/data/2.5", config.Weather.BaseURL)
	assert.Equal(t, 30*time.Minute, config.Session.IdleTimeout)
}

func TestConfigEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"7070\"\n"), 0o600))

	t.Setenv("SERVER_PORT", "6060")

	config, err := NewConfigWithProvider(NewFileConfigProvider(path))
	require.NoError(t, err)
	assert.Equal(t, "6060", config.Server.Port)
}

func TestConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	_, err := NewConfigWithProvider(NewFileConfigProvider(path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML config")
}

func TestConfigValidation(t *testing.T) {
	provider := NewFileConfigProvider("config/config.yaml")

	config := defaults()
	assert.NoError(t, provider.Validate(config))

	invalidConfig := defaults()
	invalidConfig.App.Name = ""
	invalidConfig.Search.Debounce = 0
	invalidConfig.Log.Format = "xml"

	err := provider.Validate(invalidConfig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.name is required")
	assert.Contains(t, err.Error(), "search.debounce must be positive")
	assert.Contains(t, err.Error(), `log.format "xml" is not supported`)
}

func TestConfigHelperMethods(t *testing.T) {
	config := &Config{
		App: AppConfig{
			Env: "development",
		},
	}

	assert.True(t, config.IsDevelopment())
	assert.False(t, config.IsProduction())

	config.App.Env = "production"
	assert.False(t, config.IsDevelopment())
	assert.True(t, config.IsProduction())
}

func TestFileConfigProvider_LoadFromFile(t *testing.T) {
	provider := NewFileConfigProvider("nonexistent.yaml")
	config := &Config{}

	// Test loading from non-existent file (should not error)
	err := provider.loadFromFile(config)
	assert.NoError(t, err)
}

func TestNewConfigWithProvider(t *testing.T) {
	mockProvider := &MockConfigProvider{
		config: &Config{
			App: AppConfig{
				Name:    "test-app",
				Version: "1.0.0",
				Env:     "development",
			},
		},
	}

	config, err := NewConfigWithProvider(mockProvider)
	require.NoError(t, err)
	assert.Equal(t, "test-app", config.App.Name)

	failing := &MockConfigProvider{err: errors.New("boom")}
	_, err = NewConfigWithProvider(failing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

// MockConfigProvider for testing
type MockConfigProvider struct {
	config *Config
	err    error
}

func (m *MockConfigProvider) Load() (*Config, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.config, nil
}

func (m *MockConfigProvider) Validate(config *Config) error {
	return nil
}
