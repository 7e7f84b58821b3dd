package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config — настройки самого sitekit (не сайта).
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	State    StateConfig    `mapstructure:"state"`
	Template TemplateConfig `mapstructure:"template"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StateConfig — путь к sqlite-базе сгенерированных сайтов.
type StateConfig struct {
	Path string `mapstructure:"path"`
}

// TemplateConfig — путь к собственному шаблону docker-compose. Пусто — встроенный.
type TemplateConfig struct {
	Path string `mapstructure:"path"`
}

// MetricsConfig — куда писать метрики для textfile collector. Пусто — не писать.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// Load читает настройки из файла и переменных окружения SITEKIT_*.
// Без явного пути используется ~/.sitekit.yaml, если он есть.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("state.path", filepath.Join(home, ".sitekit", "sitekit.db"))
	v.SetDefault("template.path", "")
	v.SetDefault("metrics.textfile", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("ошибка чтения конфигурации %s: %w", configPath, err)
		}
	} else if home != "" {
		v.SetConfigName(".sitekit")
		v.SetConfigType("yaml")
		v.AddConfigPath(home)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("ошибка чтения конфигурации: %w", err)
			}
		}
	}

	v.SetEnvPrefix("SITEKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	return &cfg, nil
}

// NewLogger создает slog-логгер с уровнем и форматом из конфигурации.
func NewLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
