package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config настройки сервиса витрины
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Backend  BackendConfig  `yaml:"backend"`
	Cart     CartConfig     `yaml:"cart"`
	Sessions SessionsConfig `yaml:"sessions"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// BackendConfig upstream serving /states and /orders.
type BackendConfig struct {
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxFailures    uint32        `yaml:"breaker_max_failures"`
	OpenTimeout    time.Duration `yaml:"breaker_open_timeout"`
}

type CartConfig struct {
	// DiscountPoints фиксированная скидка в баллах; 0 без скидки
	DiscountPoints string `yaml:"discount_points"`
}

type SessionsConfig struct {
	MaxIdle       time.Duration `yaml:"max_idle"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default значения по умолчанию
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":9091",
			ShutdownTimeout: 5 * time.Second,
		},
		Backend: BackendConfig{
			BaseURL:        "http://localhost:3333",
			RequestTimeout: 10 * time.Second,
			MaxFailures:    5,
			OpenTimeout:    30 * time.Second,
		},
		Cart: CartConfig{DiscountPoints: "0"},
		Sessions: SessionsConfig{
			MaxIdle:       2 * time.Hour,
			SweepInterval: 5 * time.Minute,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the optional YAML file over the defaults, then applies
// STOREFRONT_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("STOREFRONT_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("STOREFRONT_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("STOREFRONT_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("STOREFRONT_REQUEST_TIMEOUT: %w", err)
		}
		cfg.Backend.RequestTimeout = d
	}
	if v := os.Getenv("STOREFRONT_BREAKER_MAX_FAILURES"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("STOREFRONT_BREAKER_MAX_FAILURES: %w", err)
		}
		cfg.Backend.MaxFailures = uint32(n)
	}
	if v := os.Getenv("STOREFRONT_DISCOUNT_POINTS"); v != "" {
		cfg.Cart.DiscountPoints = v
	}
	if v := os.Getenv("STOREFRONT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}
