package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hazadus/go-hymnbox/internal/catalog"
	"github.com/hazadus/go-hymnbox/internal/config"
	"github.com/hazadus/go-hymnbox/internal/filter"
)

const (
	defaultConfigPath = "~/.hymnbox"
)

// Application содержит зависимости приложения
type Application struct {
	Config *config.Config
	Store  *catalog.Store
	Engine *filter.Engine
}

func main() {
	ctx := context.Background()

	// Загружаем конфигурацию
	cfg, err := config.LoadConfig(defaultConfigPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Создаем клиент каталога
	store := catalog.NewStore(&catalog.StoreConfig{
		SourceURL: cfg.CatalogURL,
		Region:    cfg.AwsRegion,
		AccessKey: cfg.AwsAccessKey,
		SecretKey: cfg.AwsSecretKey,
		Endpoint:  cfg.AwsEndpoint,
	})

	// Загружаем каталог. Ошибка загрузки не фатальна: приложение
	// продолжает работу с пустым каталогом
	if err := store.Fetch(ctx); err != nil {
		fmt.Printf("⚠️  Не удалось загрузить каталог: %v\n", err)
	}

	// Создаем движок фильтрации поверх загруженного каталога
	engine := filter.NewEngine()
	engine.SetCatalog(store.Tracks())

	app := &Application{
		Config: cfg,
		Store:  store,
		Engine: engine,
	}

	rootCmd := app.createRootCommand(ctx)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
