// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Задержка поиска по умолчанию, если в конфигурации не задана
const defaultSearchDelayMS = 300

// Config структура для хранения конфигурации приложения
type Config struct {
	CatalogURL    string `yaml:"catalog_url"`     // https://... или s3://bucket/key
	AwsRegion     string `yaml:"aws_region"`      // Для источника s3://
	AwsAccessKey  string `yaml:"aws_access_key"`
	AwsSecretKey  string `yaml:"aws_secret_key"`
	AwsEndpoint   string `yaml:"aws_endpoint"`
	SearchDelayMS int    `yaml:"search_delay_ms"` // Задержка поиска в миллисекундах
}

// SearchDelay возвращает задержку поиска как time.Duration
func (c *Config) SearchDelay() time.Duration {
	return time.Duration(c.SearchDelayMS) * time.Millisecond
}

// LoadConfig загружает конфигурацию приложения из указанного файла
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	if config.CatalogURL == "" {
		return nil, fmt.Errorf("в конфигурации не задан адрес каталога (catalog_url)")
	}

	// Устанавливаем значения по умолчанию, если они не заданы
	if config.SearchDelayMS <= 0 {
		config.SearchDelayMS = defaultSearchDelayMS
	}

	return config, nil
}
