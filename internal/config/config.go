package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token string `yaml:"token"`
}

type TLSConfig struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

type HTTPConfig struct {
	Port int `yaml:"port"`
	// PublicURL is the externally reachable base URL registered as the
	// webhook endpoint, e.g. "https://203.0.113.7:8443".
	PublicURL string `yaml:"public_url"`
	// SecretToken, when set, is required in the secret-token header of
	// every webhook request. Empty disables the check.
	SecretToken string    `yaml:"secret_token"`
	TLS         TLSConfig `yaml:"tls"`
}

type StorageConfig struct {
	// Chats is the membership snapshot path.
	Chats string `yaml:"chats"`
	// RelayTargets is optional; empty keeps targets in memory only.
	RelayTargets string `yaml:"relay_targets"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type Config struct {
	Bot     BotConfig     `yaml:"bot"`
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.HTTP.Port <= 0 {
		cfg.HTTP.Port = 8443
	}
	if cfg.Storage.Chats == "" {
		cfg.Storage.Chats = "chats.json"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	// Minimal validation
	if cfg.Bot.Token == "" && !dev {
		return nil, errors.New("bot.token is required")
	}
	if (cfg.HTTP.TLS.Cert == "") != (cfg.HTTP.TLS.Key == "") {
		return nil, errors.New("http.tls.cert and http.tls.key must be set together")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
