// Package app содержит основную логику TUI приложения
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-hymnbox/internal/debounce"
	"github.com/hazadus/go-hymnbox/internal/filter"
	"github.com/hazadus/go-hymnbox/internal/player"
	"github.com/hazadus/go-hymnbox/internal/tui/browse"
	tuiPlayer "github.com/hazadus/go-hymnbox/internal/tui/player"
)

// ScreenType определяет тип текущего экрана
type ScreenType int

// Константы для типов экранов
const (
	// BrowseScreen - экран просмотра каталога
	BrowseScreen ScreenType = iota
	// PlayerScreen - экран плеера
	PlayerScreen
)

// MainModel представляет главную модель TUI
type MainModel struct {
	session       *player.Session
	currentScreen ScreenType
	browseModel   *browse.Model
	playerModel   *tuiPlayer.Model
}

// NewMainModel создает новую главную модель
func NewMainModel(engine *filter.Engine, session *player.Session, searchDelay time.Duration) *MainModel {
	// Откладыватель поиска живет столько же, сколько экран просмотра
	debouncer := debounce.NewDebouncer(searchDelay)
	browseModel := browse.NewModel(engine, debouncer)

	return &MainModel{
		session:       session,
		currentScreen: BrowseScreen,
		browseModel:   browseModel,
		playerModel:   nil, // Будет создана при выборе трека
	}
}

// Init инициализирует модель
func (m *MainModel) Init() tea.Cmd {
	return m.browseModel.Init()
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Глобальные горячие клавиши
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}

	case browse.VisibleChangedMsg:
		// Сессия воспроизведения всегда ходит по видимому списку
		m.session.SetTracks(msg.Tracks)
		return m, nil

	case browse.TrackSelectedMsg:
		// Загружаем выбранный трек и переключаемся на экран плеера
		if err := m.session.Load(context.Background(), msg.Track); err != nil {
			return m, nil
		}
		_ = m.session.Play()

		m.currentScreen = PlayerScreen
		m.playerModel = tuiPlayer.NewModel(m.session)
		return m, m.playerModel.Init()

	case tuiPlayer.GoBackMsg:
		// Возвращаемся к просмотру каталога, воспроизведение продолжается
		m.currentScreen = BrowseScreen
		if m.playerModel != nil {
			m.playerModel.Close()
			m.playerModel = nil
		}
		return m, nil

	case tea.WindowSizeMsg:
		// Передаем размеры окна обеим моделям
		var browseCmd tea.Cmd
		m.browseModel, browseCmd = m.browseModel.Update(msg)
		if m.playerModel != nil {
			var playerCmd tea.Cmd
			m.playerModel, playerCmd = m.playerModel.Update(msg)
			return m, tea.Batch(browseCmd, playerCmd)
		}
		return m, browseCmd
	}

	// Передаем сообщение активной модели
	switch m.currentScreen {
	case BrowseScreen:
		var browseCmd tea.Cmd
		m.browseModel, browseCmd = m.browseModel.Update(msg)
		cmd = browseCmd

	case PlayerScreen:
		if m.playerModel != nil {
			var playerCmd tea.Cmd
			m.playerModel, playerCmd = m.playerModel.Update(msg)
			cmd = playerCmd
		}
	}

	return m, cmd
}

// View отображает интерфейс
func (m *MainModel) View() string {
	switch m.currentScreen {
	case BrowseScreen:
		return m.browseModel.View()

	case PlayerScreen:
		if m.playerModel != nil {
			return m.playerModel.View()
		}
		return "Ошибка: модель плеера не инициализирована"

	default:
		return "Неизвестный экран"
	}
}

// Close закрывает ресурсы главной модели
func (m *MainModel) Close() {
	if m.playerModel != nil {
		m.playerModel.Close()
	}
	m.browseModel.Close()
}
