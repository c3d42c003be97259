package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/hazadus/go-hymnbox/internal/catalog"
	"github.com/hazadus/go-hymnbox/internal/config"
	"github.com/hazadus/go-hymnbox/internal/filter"
)

// captureOutput перехватывает stdout и stderr во время выполнения функции
func captureOutput(t *testing.T, fn func()) string {
	// Сохраняем оригинальные stdout и stderr
	oldStdout := os.Stdout
	oldStderr := os.Stderr

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Ошибка создания pipe: %v", err)
	}

	// Перенаправляем stdout и stderr
	os.Stdout = w
	os.Stderr = w

	fn()

	// Восстанавливаем оригинальные stdout и stderr
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	w.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("Ошибка чтения результата: %v", err)
	}

	return buf.String()
}

// createTestApplication создает приложение с каталогом из переданных треков
func createTestApplication(tracks []catalog.Track) *Application {
	store := catalog.NewStore(&catalog.StoreConfig{})
	store.Replace(tracks)

	engine := filter.NewEngine()
	engine.SetCatalog(store.Tracks())

	return &Application{
		Config: &config.Config{CatalogURL: "https://example.com/catalog.json"},
		Store:  store,
		Engine: engine,
	}
}

func testTracks() []catalog.Track {
	return []catalog.Track{
		{
			ID:       "hymn-1",
			Index:    1,
			Title:    "Amazing Grace",
			Artist:   "Choir",
			Album:    "Classics",
			Language: "English",
			TypeOf:   "Hymn",
			Link:     "https://example.com/1.mp3",
		},
		{
			ID:       "song-2",
			Index:    2,
			Title:    "Shalom",
			Artist:   "Ensemble",
			Album:    "Voices",
			Language: "Hebrew",
			TypeOf:   "Song",
			Link:     "https://example.com/2.mp3",
		},
	}
}

// TestCmdList проверяет, что команда `list` корректно выводит список треков
func TestCmdList(t *testing.T) {
	app := createTestApplication(testTracks())

	listCmd := app.createListCommand()

	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	expectedStrings := []string{
		"📚 Найдено треков: 2",
		"Amazing Grace",
		"Choir",
		"Shalom",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("Вывод команды list не содержит ожидаемую строку '%s': %s", expected, output)
		}
	}
}

// TestCmdListEmpty проверяет, что команда `list` корректно обрабатывает пустой каталог
func TestCmdListEmpty(t *testing.T) {
	app := createTestApplication(nil)

	listCmd := app.createListCommand()

	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	if !strings.Contains(output, "📚 Треки не найдены") {
		t.Errorf("Команда list не отобразила сообщение о пустом каталоге: %s", output)
	}
}

// TestCmdListWithFilters проверяет, что флаги фильтров сужают список
func TestCmdListWithFilters(t *testing.T) {
	app := createTestApplication(testTracks())

	listCmd := app.createListCommand()

	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{"--language", "Hebrew"})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	if !strings.Contains(output, "Shalom") {
		t.Errorf("Отфильтрованный список не содержит ожидаемый трек: %s", output)
	}
	if strings.Contains(output, "Amazing Grace") {
		t.Errorf("Отфильтрованный список содержит лишний трек: %s", output)
	}
}

// TestCmdListAlbums проверяет вывод уникальных альбомов
func TestCmdListAlbums(t *testing.T) {
	app := createTestApplication(testTracks())

	listCmd := app.createListCommand()

	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{"--albums"})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	expectedStrings := []string{
		"💿 Найдено альбомов: 2",
		"Classics",
		"Voices",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("Вывод команды albums не содержит ожидаемую строку '%s': %s", expected, output)
		}
	}
}

// TestCmdInfo проверяет вывод записи каталога
func TestCmdInfo(t *testing.T) {
	app := createTestApplication(testTracks())

	infoCmd := app.createInfoCommand(context.Background())

	output := captureOutput(t, func() {
		infoCmd.SetArgs([]string{"hymn-1"})
		if err := infoCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды info: %v", err)
		}
	})

	expectedStrings := []string{
		"🎵 Запись каталога",
		"hymn-1",
		"Amazing Grace",
		"Choir",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("Вывод команды info не содержит ожидаемую строку '%s': %s", expected, output)
		}
	}
}

// TestCmdInfoUnknownTrack проверяет обработку неизвестного ID трека
func TestCmdInfoUnknownTrack(t *testing.T) {
	app := createTestApplication(testTracks())

	infoCmd := app.createInfoCommand(context.Background())
	infoCmd.SetArgs([]string{"no-such-track"})
	infoCmd.SilenceUsage = true
	infoCmd.SilenceErrors = true

	if err := infoCmd.Execute(); err == nil {
		t.Error("Ожидалась ошибка при запросе неизвестного трека")
	}
}

// TestCmdPlayInvalidArgs проверяет обработку неверных аргументов в команде play
func TestCmdPlayInvalidArgs(t *testing.T) {
	app := createTestApplication(testTracks())

	playCmd := app.createPlayCommand(context.Background())

	var buf bytes.Buffer
	playCmd.SetOut(&buf)
	playCmd.SetErr(&buf)

	// Выполняем команду без аргументов
	err := playCmd.Execute()
	if err == nil {
		t.Error("Ожидалась ошибка при выполнении команды play без аргументов")
	}

	output := buf.String()
	if !strings.Contains(output, "requires exactly 1 arg") && !strings.Contains(output, "accepts 1 arg") {
		t.Errorf("Команда play не отобразила ошибку о неверных аргументах: %s", output)
	}
}
