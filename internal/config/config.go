package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Log      *LogConfig      `mapstructure:"log"`
	Backend  *BackendConfig  `mapstructure:"backend"`
	Weather  *WeatherConfig  `mapstructure:"weather"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// BackendConfig points at the museum REST backend.
type BackendConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	LogBodies bool          `mapstructure:"log_bodies"`
}

type WeatherConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	APIKey          string        `mapstructure:"api_key"`
	DefaultLocation string        `mapstructure:"default_location"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

type PostgresConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode,
	)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("log.level", "info")
	v.SetDefault("backend.base_url", "https://chamus.restteach.com/")
	v.SetDefault("backend.timeout", 15*time.Second)
	v.SetDefault("backend.log_bodies", false)
	v.SetDefault("weather.base_url", "https://api.weatherapi.com/v1/")
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.default_location", "Mexico City")
	v.SetDefault("weather.timeout", 10*time.Second)
	v.SetDefault("postgres.enabled", false)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.db", "museos")
	v.SetDefault("postgres.sslmode", "disable")
}

// Load reads the yaml file at path and overlays environment variables,
// e.g. WEATHER_API_KEY overrides weather.api_key. A missing file is not an
// error; defaults and env still apply.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf, err := unmarshal(v)
	if err != nil {
		return nil, err
	}

	return conf, nil
}

// Watch re-reads the config file on every write and hands the fresh
// config to onChange. Only settings that are safe to change at runtime
// should be applied by the callback.
func Watch(path string, onChange func(*AppConfig)) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		conf, err := unmarshal(v)
		if err != nil {
			return
		}
		onChange(conf)
	})
	v.WatchConfig()
}

func unmarshal(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}
	// Slices are not picked up from env by AutomaticEnv alone.
	if raw := v.GetString("api.allowed_cors_domains"); raw != "" && strings.Contains(raw, ",") {
		conf.API.AllowedCORSDomains = strings.Split(raw, ",")
	}

	return conf, nil
}
