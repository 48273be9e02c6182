package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jinwoohan/insuragraph/internal/platform/envutil"
)

// Config carries the non-secret application settings. Values come from an
// optional YAML file (CONFIG_PATH, default ./config.yaml) with env vars
// taking precedence; secrets (API keys, DB passwords) are env-only.
type Config struct {
	LogMode          string `yaml:"log_mode"`
	HTTPPort         string `yaml:"http_port"`
	DefaultProductID string `yaml:"default_product_id"`
	AnswerLocale     string `yaml:"answer_locale"`
	AnswerTemp       string `yaml:"answer_temperature"`
	CacheTTLSeconds  int    `yaml:"cache_ttl_seconds"`
}

func LoadConfig() (Config, error) {
	cfg := Config{
		LogMode:         "development",
		HTTPPort:        "8080",
		AnswerLocale:    "ko",
		AnswerTemp:      "0.2",
		CacheTTLSeconds: 600,
	}

	path := envutil.Str("CONFIG_PATH", "config.yaml")
	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg.LogMode = envutil.Str("LOG_MODE", cfg.LogMode)
	cfg.HTTPPort = envutil.Str("PORT", cfg.HTTPPort)
	cfg.DefaultProductID = envutil.Str("PRODUCT_ID", cfg.DefaultProductID)
	cfg.AnswerLocale = envutil.Str("ANSWER_LOCALE", cfg.AnswerLocale)
	cfg.AnswerTemp = envutil.Str("ANSWER_TEMPERATURE", cfg.AnswerTemp)
	cfg.CacheTTLSeconds = envutil.Int("CACHE_TTL_SECONDS", cfg.CacheTTLSeconds)

	cfg.AnswerLocale = strings.ToLower(strings.TrimSpace(cfg.AnswerLocale))
	return cfg, nil
}
