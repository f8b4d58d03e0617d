package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

const (
	GeoSourceEmbedded = "embedded"
	GeoSourceFile     = "file"
	GeoSourceHTTP     = "http"
)

type Config struct {
	AppName    string        `yaml:"app_name" envconfig:"APP_NAME" validate:"required"`
	AppVersion string        `yaml:"app_version" envconfig:"APP_VERSION"`
	AppEnv     string        `yaml:"app_env" envconfig:"APP_ENV"`
	Port       string        `yaml:"port" envconfig:"PORT" validate:"required,numeric"`
	LogLevel   string        `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	SentryDSN  string        `yaml:"sentry_dsn" envconfig:"SENTRY_DSN" validate:"omitempty,url"`
	Weather    WeatherConfig `yaml:"weather"`
	GeoJSON    GeoJSONConfig `yaml:"geojson"`
}

// WeatherConfig replaces a hard-coded OneCall URL: the endpoint is assembled from these fields.
// Nested keys carry no envconfig alias, so they are only read as WEATHER_<FIELD>.
type WeatherConfig struct {
	BaseURL       string  `yaml:"base_url" split_words:"true" validate:"required,url"`
	APIKey        string  `yaml:"api_key" split_words:"true" validate:"required"`
	Latitude      float64 `yaml:"latitude" validate:"latitude"`
	Longitude     float64 `yaml:"longitude" validate:"longitude"`
	Units         string  `yaml:"units" validate:"oneof=standard metric imperial"`
	DefaultWindow int     `yaml:"default_window" split_words:"true" validate:"min=0,max=48"`
}

// GeoJSONConfig is read from GEOJSON_SOURCE, GEOJSON_PATH and GEOJSON_URL.
type GeoJSONConfig struct {
	Source string `yaml:"source" validate:"oneof=embedded file http"`
	Path   string `yaml:"path" validate:"required_if=Source file"`
	URL    string `yaml:"url" validate:"required_if=Source http"`
}

func defaults() Config {
	return Config{
		AppName:    "blueprint",
		AppVersion: "1.0.0",
		AppEnv:     "development",
		Port:       "8080",
		LogLevel:   "info",
		Weather: WeatherConfig{
			BaseURL:       "https://api.openweathermap.org/data/3.0/onecall",
			Latitude:      33.6846,
			Longitude:     -117.8265,
			Units:         "metric",
			DefaultWindow: 12,
		},
		GeoJSON: GeoJSONConfig{
			Source: GeoSourceEmbedded,
		},
	}
}

// NewConfig layers defaults, the YAML file at path (skipped when missing) and the environment,
// then validates the result.
func NewConfig(path string) (*Config, error) {
	cnf := defaults()

	if yamlData, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(yamlData, &cnf); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := envconfig.Process("", &cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	if err := cnf.Validate(); err != nil {
		return nil, err
	}

	return &cnf, nil
}

func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag()))
	}

	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
