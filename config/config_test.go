package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("WEATHER_API_KEY", "secret")

	config, err := NewConfig("nonexistent.yaml")
	require.NoError(t, err)

	assert.Equal(t, "blueprint", config.AppName)
	assert.Equal(t, "1.0.0", config.AppVersion)
	assert.Equal(t, "development", config.AppEnv)
	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "https://api.openweathermap.org/data/3.0/onecall", config.Weather.BaseURL)
	assert.Equal(t, "secret", config.Weather.APIKey)
	assert.Equal(t, "metric", config.Weather.Units)
	assert.Equal(t, 12, config.Weather.DefaultWindow)
	assert.Equal(t, GeoSourceEmbedded, config.GeoJSON.Source)
	assert.False(t, config.IsProduction())
}

func TestNewConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("WEATHER_API_KEY", "")

	_, err := NewConfig("nonexistent.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Weather.APIKey")
}

func TestNewConfig_YAMLThenEnvironment(t *testing.T) {
	path := writeYAML(t, `
app_name: from-yaml
port: "9000"
weather:
  api_key: yaml-key
  latitude: 52.52
  longitude: 13.41
  units: imperial
geojson:
  source: file
  path: /srv/routes.geojson
`)
	t.Setenv("PORT", "9090")
	t.Setenv("WEATHER_UNITS", "standard")

	config, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-yaml", config.AppName)
	assert.Equal(t, "9090", config.Port)
	assert.Equal(t, "yaml-key", config.Weather.APIKey)
	assert.Equal(t, 52.52, config.Weather.Latitude)
	assert.Equal(t, 13.41, config.Weather.Longitude)
	assert.Equal(t, "standard", config.Weather.Units)
	assert.Equal(t, "https://api.openweathermap.org/data/3.0/onecall", config.Weather.BaseURL)
	assert.Equal(t, GeoSourceFile, config.GeoJSON.Source)
	assert.Equal(t, "/srv/routes.geojson", config.GeoJSON.Path)
}

func TestNewConfig_NestedKeysIgnoreBareNames(t *testing.T) {
	path := writeYAML(t, `
weather:
  api_key: yaml-key
geojson:
  source: file
  path: /srv/routes.geojson
`)
	t.Setenv("PATH", "/usr/local/bin:/usr/bin")
	t.Setenv("URL", "https://elsewhere.example")
	t.Setenv("API_KEY", "bare-key")
	t.Setenv("SOURCE", "http")

	config, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/routes.geojson", config.GeoJSON.Path)
	assert.Equal(t, GeoSourceFile, config.GeoJSON.Source)
	assert.Empty(t, config.GeoJSON.URL)
	assert.Equal(t, "yaml-key", config.Weather.APIKey)

	t.Setenv("GEOJSON_PATH", "/env/routes.geojson")
	t.Setenv("WEATHER_API_KEY", "env-key")
	t.Setenv("WEATHER_DEFAULT_WINDOW", "6")

	config, err = NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/env/routes.geojson", config.GeoJSON.Path)
	assert.Equal(t, "env-key", config.Weather.APIKey)
	assert.Equal(t, 6, config.Weather.DefaultWindow)
}

func TestNewConfig_FileSourceWithoutPath(t *testing.T) {
	path := writeYAML(t, `
weather:
  api_key: yaml-key
geojson:
  source: file
`)
	t.Setenv("PATH", "/usr/bin")

	_, err := NewConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GeoJSON.Path")
}

func TestNewConfig_MalformedYAML(t *testing.T) {
	path := writeYAML(t, "weather: [unclosed")

	_, err := NewConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML config")
}

func TestConfigValidation(t *testing.T) {
	valid := defaults()
	valid.Weather.APIKey = "secret"
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"latitude out of range", func(c *Config) { c.Weather.Latitude = 91 }, "Weather.Latitude"},
		{"longitude out of range", func(c *Config) { c.Weather.Longitude = -181 }, "Weather.Longitude"},
		{"unknown units", func(c *Config) { c.Weather.Units = "kelvin" }, "Weather.Units"},
		{"window above hourly horizon", func(c *Config) { c.Weather.DefaultWindow = 49 }, "Weather.DefaultWindow"},
		{"file source without path", func(c *Config) { c.GeoJSON.Source = GeoSourceFile }, "GeoJSON.Path"},
		{"http source without url", func(c *Config) { c.GeoJSON.Source = GeoSourceHTTP }, "GeoJSON.URL"},
		{"unknown source", func(c *Config) { c.GeoJSON.Source = "s3" }, "GeoJSON.Source"},
		{"bad base url", func(c *Config) { c.Weather.BaseURL = "not a url" }, "Weather.BaseURL"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "LogLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)

			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestConfigFileLoading(t *testing.T) {
	t.Setenv("WEATHER_API_KEY", "restored-after-test")
	require.NoError(t, os.Unsetenv("WEATHER_API_KEY"))

	config, err := NewConfig("config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "blueprint", config.AppName)
	assert.Equal(t, "YOUR-API-KEY-HERE", config.Weather.APIKey)
	assert.Equal(t, GeoSourceEmbedded, config.GeoJSON.Source)
}
