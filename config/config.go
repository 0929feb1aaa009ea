package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "config/config.yaml"

// Config is read from SECTION_FIELD variables only, e.g. WEATHER_API_KEY or
// SESSION_IDLE_TIMEOUT. Bare field names like NAME or API_KEY are ignored.
type Config struct {
	App     AppConfig     `yaml:"app" envconfig:"APP"`
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Log     LogConfig     `yaml:"log" envconfig:"LOG"`
	Weather WeatherConfig `yaml:"weather" envconfig:"WEATHER"`
	Cities  CitiesConfig  `yaml:"cities" envconfig:"CITIES"`
	Search  SearchConfig  `yaml:"search" envconfig:"SEARCH"`
	Session SessionConfig `yaml:"session" envconfig:"SESSION"`
	Observe ObserveConfig `yaml:"observe" envconfig:"OBSERVE"`
}

type AppConfig struct {
	Name    string `yaml:"name" split_words:"true"`
	Version string `yaml:"version" split_words:"true"`
	Env     string `yaml:"env" split_words:"true"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port" split_words:"true"`
	ReadTimeout  int    `yaml:"read_timeout" split_words:"true"`
	WriteTimeout int    `yaml:"write_timeout" split_words:"true"`
	IdleTimeout  int    `yaml:"idle_timeout" split_words:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level" split_words:"true"`
	Format string `yaml:"format" split_words:"true"`
}

// WeatherConfig describes the weather provider: current conditions, forecast
// and reverse geocoding share the same API key.
type WeatherConfig struct {
	APIKey     string        `yaml:"api_key,omitempty" split_words:"true"`
	BaseURL    string        `yaml:"base_url" split_words:"true"`
	GeoBaseURL string        `yaml:"geo_base_url" split_words:"true"`
	Timeout    time.Duration `yaml:"timeout" split_words:"true"`
}

// CitiesConfig describes the city directory used by the location search.
type CitiesConfig struct {
	APIKey     string        `yaml:"api_key,omitempty" split_words:"true"`
	APIHost    string        `yaml:"api_host" split_words:"true"`
	BaseURL    string        `yaml:"base_url" split_words:"true"`
	CountryIDs string        `yaml:"country_ids" split_words:"true"`
	PageSize   int           `yaml:"page_size" split_words:"true"`
	Timeout    time.Duration `yaml:"timeout" split_words:"true"`
}

type SearchConfig struct {
	Debounce time.Duration `yaml:"debounce" split_words:"true"`
}

type SessionConfig struct {
	IdleTimeout   time.Duration `yaml:"idle_timeout" split_words:"true"`
	SweepInterval time.Duration `yaml:"sweep_interval" split_words:"true"`
}

type ObserveConfig struct {
	SentryDSN string `yaml:"sentry_dsn,omitempty" split_words:"true"`
	ZipkinURL string `yaml:"zipkin_url,omitempty" split_words:"true"`
}

// ConfigProvider loads and validates the application configuration.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider layers an optional YAML file, an optional .env file and
// the process environment over the built-in defaults.
type FileConfigProvider struct {
	path    string
	envFile string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{
		path:    path,
		envFile: ".env",
	}
}

// NewConfig loads the configuration from CONFIG_FILE (or config/config.yaml).
func NewConfig() (*Config, error) {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = defaultConfigFile
	}

	return NewConfigWithProvider(NewFileConfigProvider(path))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cnf, nil
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-dashboard",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Weather: WeatherConfig{
			BaseURL:    "https://api.openweathermap.org/data/2.5",
			GeoBaseURL: "https://api.openweathermap.org/geo/1.0",
			Timeout:    10 * time.Second,
		},
		Cities: CitiesConfig{
			APIHost:    "wft-geo-db.p.rapidapi.com",
			BaseURL:    "https://wft-geo-db.p.rapidapi.com/v1/geo",
			CountryIDs: "IN",
			PageSize:   5,
			Timeout:    10 * time.Second,
		},
		Search: SearchConfig{
			Debounce: 600 * time.Millisecond,
		},
		Session: SessionConfig{
			IdleTimeout:   30 * time.Minute,
			SweepInterval: time.Minute,
		},
	}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := defaults()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	// .env never overrides variables already present in the environment
	if err := godotenv.Load(p.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", p.envFile, err)
	}

	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	var problems []string

	if strings.TrimSpace(config.App.Name) == "" {
		problems = append(problems, "app.name is required")
	}
	if strings.TrimSpace(config.Server.Port) == "" {
		problems = append(problems, "server.port is required")
	}
	if config.Server.ReadTimeout < 0 || config.Server.WriteTimeout < 0 || config.Server.IdleTimeout < 0 {
		problems = append(problems, "server timeouts must not be negative")
	}
	switch config.Log.Format {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not supported", config.Log.Format))
	}
	if config.Weather.BaseURL == "" || config.Weather.GeoBaseURL == "" {
		problems = append(problems, "weather.base_url and weather.geo_base_url are required")
	}
	if config.Cities.BaseURL == "" {
		problems = append(problems, "cities.base_url is required")
	}
	if config.Cities.CountryIDs == "" {
		problems = append(problems, "cities.country_ids is required")
	}
	if config.Cities.PageSize <= 0 {
		problems = append(problems, "cities.page_size must be positive")
	}
	if config.Search.Debounce <= 0 {
		problems = append(problems, "search.debounce must be positive")
	}
	if config.Session.IdleTimeout <= 0 || config.Session.SweepInterval <= 0 {
		problems = append(problems, "session.idle_timeout and session.sweep_interval must be positive")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
