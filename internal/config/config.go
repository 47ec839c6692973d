package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config is read from an optional JSON file, then flags, then the environment.
// Each source overrides the previous one.
type Config struct {
	BaseURL        string        `env:"BASE_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	LogLevel       string        `env:"LOG_LEVEL"`
	LogFormat      string        `env:"LOG_FORMAT"`
	ToastDwell     time.Duration `env:"TOAST_DWELL"`
	Clipboard      bool          `env:"CLIPBOARD"`
	StubAddress    string        `env:"SERVER_ADDRESS"`
	ConfigPath     string        `env:"CONFIG"`
}

type fileConfig struct {
	BaseURL        *string `json:"base_url"`
	RequestTimeout *string `json:"request_timeout"`
	LogLevel       *string `json:"log_level"`
	LogFormat      *string `json:"log_format"`
	ToastDwell     *string `json:"toast_dwell"`
	Clipboard      *bool   `json:"clipboard"`
	StubAddress    *string `json:"server_address"`
}

func defaultConfig() *Config {
	return &Config{
		BaseURL:        "http://localhost:8080",
		RequestTimeout: 0,
		LogLevel:       "info",
		LogFormat:      "console",
		ToastDwell:     3 * time.Second,
		Clipboard:      true,
		StubAddress:    "localhost:8080",
	}
}

func NewConfig() (*Config, error) {
	cfg := defaultConfig()

	flag.StringVar(&cfg.BaseURL, "b", cfg.BaseURL, "Base URL of the shortener backend (e.g. http://localhost:8080)")
	flag.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "Timeout of a backend call, 0 means none")
	flag.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (console or json)")
	flag.DurationVar(&cfg.ToastDwell, "toast", cfg.ToastDwell, "How long a notification stays before fading")
	flag.BoolVar(&cfg.Clipboard, "clipboard", cfg.Clipboard, "Copy short URLs to the clipboard")
	flag.StringVar(&cfg.StubAddress, "a", cfg.StubAddress, "Listen address of the stub backend")
	flag.StringVar(&cfg.ConfigPath, "c", cfg.ConfigPath, "Path to a JSON config file")

	flag.Parse()

	// The file path is needed before the file is applied, the rest of the environment after.
	pathOnly := struct {
		ConfigPath string `env:"CONFIG"`
	}{ConfigPath: cfg.ConfigPath}
	if err := env.Parse(&pathOnly); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	path := pathOnly.ConfigPath

	if path != "" {
		set := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

		if err := applyFile(cfg, path, set); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// applyFile copies the values of the JSON file at path into cfg,
// skipping those given explicitly as flags.
func applyFile(cfg *Config, path string, set map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.BaseURL != nil && !set["b"] {
		cfg.BaseURL = *fc.BaseURL
	}
	if fc.LogLevel != nil && !set["l"] {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil && !set["log-format"] {
		cfg.LogFormat = *fc.LogFormat
	}
	if fc.Clipboard != nil && !set["clipboard"] {
		cfg.Clipboard = *fc.Clipboard
	}
	if fc.StubAddress != nil && !set["a"] {
		cfg.StubAddress = *fc.StubAddress
	}
	if fc.RequestTimeout != nil && !set["t"] {
		d, err := time.ParseDuration(*fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("config file request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if fc.ToastDwell != nil && !set["toast"] {
		d, err := time.ParseDuration(*fc.ToastDwell)
		if err != nil {
			return fmt.Errorf("config file toast_dwell: %w", err)
		}
		cfg.ToastDwell = d
	}

	return nil
}
