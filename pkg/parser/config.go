package parser

import (
	"errors"
	"fmt"
	"path/filepath"
)

// CurrentVersion — поддерживаемая версия формата site.yaml.
const CurrentVersion = 1

// Config — корневая структура, представляющая весь файл site.yaml
type Config struct {
	Version  int      `yaml:"version"`
	SiteName string   `yaml:"siteName"`
	Email    string   `yaml:"email,omitempty"`
	Features []string `yaml:"features,omitempty"` // le, wpsubdom, wpredis
	Output   string   `yaml:"output,omitempty"`
}

// Validate проверяет обязательные поля. Неизвестные features не считаются ошибкой.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("неподдерживаемая версия конфигурации: %d", c.Version)
	}
	if c.SiteName == "" {
		return errors.New("в site.yaml не указано обязательное поле 'siteName'")
	}
	return nil
}

// OutputDir возвращает директорию, в которую пишутся файлы сайта.
func (c *Config) OutputDir() string {
	if c.Output != "" {
		return filepath.Clean(c.Output)
	}
	return filepath.Join(".", c.SiteName)
}

// AdminEmail возвращает почту для сертификатов; по умолчанию admin@<siteName>.
func (c *Config) AdminEmail() string {
	if c.Email != "" {
		return c.Email
	}
	return "admin@" + c.SiteName
}
