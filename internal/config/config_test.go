package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.yaml")

	content := `catalog_url: https://example.com/catalog.json
aws_region: us-east-1
aws_access_key: test-key
aws_secret_key: test-secret
aws_endpoint: http://localhost:9000
search_delay_ms: 500
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Ошибка записи тестовой конфигурации: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	if cfg.CatalogURL != "https://example.com/catalog.json" {
		t.Errorf("Неожиданный адрес каталога: %q", cfg.CatalogURL)
	}
	if cfg.AwsRegion != "us-east-1" {
		t.Errorf("Неожиданный регион: %q", cfg.AwsRegion)
	}
	if cfg.SearchDelay() != 500*time.Millisecond {
		t.Errorf("Неожиданная задержка поиска: %v", cfg.SearchDelay())
	}
}

func TestLoadConfigDefaultSearchDelay(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.yaml")

	content := "catalog_url: https://example.com/catalog.json\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Ошибка записи тестовой конфигурации: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Незаданная задержка получает значение по умолчанию
	if cfg.SearchDelay() != 300*time.Millisecond {
		t.Errorf("Ожидалась задержка 300ms, получено %v", cfg.SearchDelay())
	}
}

func TestLoadConfigRequiresCatalogURL(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.yaml")

	content := "aws_region: us-east-1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Ошибка записи тестовой конфигурации: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Ожидалась ошибка для конфигурации без адреса каталога")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/no/such/config.yaml"); err == nil {
		t.Error("Ожидалась ошибка для несуществующего файла")
	}
}
