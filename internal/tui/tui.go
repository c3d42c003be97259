// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-hymnbox/internal/filter"
	"github.com/hazadus/go-hymnbox/internal/player"
	"github.com/hazadus/go-hymnbox/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	engine      *filter.Engine
	session     *player.Session
	searchDelay time.Duration
}

// NewApp создает новый экземпляр TUI приложения. Сессия воспроизведения
// создается на уровне приложения и передается сюда по ссылке.
func NewApp(engine *filter.Engine, session *player.Session, searchDelay time.Duration) *App {
	return &App{
		engine:      engine,
		session:     session,
		searchDelay: searchDelay,
	}
}

// Run запускает TUI приложение
func (tuiApp *App) Run() error {
	// Создаем модель для Bubble Tea
	model := app.NewMainModel(tuiApp.engine, tuiApp.session, tuiApp.searchDelay)

	// Создаем программу Bubble Tea
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Запускаем программу
	_, err := p.Run()

	// Освобождаем ресурсы модели после завершения программы
	model.Close()

	return err
}
