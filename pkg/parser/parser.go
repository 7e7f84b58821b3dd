package parser

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrEmptyConfig = errors.New("содержимое конфигурации не может быть пустым")

func Parse(content []byte) (*Config, error) {
	var config Config

	if len(content) == 0 {
		return nil, ErrEmptyConfig
	}

	err := yaml.Unmarshal(content, &config)
	if err != nil {
		return nil, fmt.Errorf("ошибка при парсинге конфига: %w", err)
	}

	return &config, nil
}

// Load читает и проверяет site.yaml с диска.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения %s: %w", path, err)
	}

	config, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return config, nil
}

func Marshal(config *Config) ([]byte, error) {
	out, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации конфига: %w", err)
	}
	return out, nil
}
