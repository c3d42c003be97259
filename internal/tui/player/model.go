// Package player содержит модель экрана воспроизведения для TUI
package player

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-hymnbox/internal/catalog"
	"github.com/hazadus/go-hymnbox/internal/player"
	"github.com/hazadus/go-hymnbox/internal/utils"
)

const seekStep = 5 * time.Second

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginLeft(2)
	artistStyle = lipgloss.NewStyle().MarginLeft(2).Foreground(lipgloss.Color("170"))
	infoStyle   = lipgloss.NewStyle().MarginLeft(2).Foreground(lipgloss.Color("#888888"))
	helpStyle   = lipgloss.NewStyle().MarginLeft(2).Foreground(lipgloss.Color("241"))
)

// GoBackMsg отправляется при возврате на экран просмотра каталога
type GoBackMsg struct{}

// sessionEventMsg несет событие сессии воспроизведения
type sessionEventMsg player.Event

// Model представляет модель экрана воспроизведения
type Model struct {
	session  *player.Session
	sub      *player.Subscription
	progress progress.Model

	track    *catalog.Track
	state    player.State
	position time.Duration
	duration time.Duration
}

// NewModel создает новую модель экрана воспроизведения
func NewModel(session *player.Session) *Model {
	return &Model{
		session:  session,
		sub:      session.Subscribe(),
		progress: progress.New(progress.WithDefaultGradient()),
		state:    session.State(),
	}
}

// Init запускает прослушивание событий сессии
func (m *Model) Init() tea.Cmd {
	return m.listenForEvents()
}

// listenForEvents ждет следующее событие сессии воспроизведения
func (m *Model) listenForEvents() tea.Cmd {
	events := m.sub.C
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return sessionEventMsg(event)
	}
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 8
		return m, nil

	case sessionEventMsg:
		event := player.Event(msg)
		if event.Track != nil {
			m.track = event.Track
		}
		m.state = event.State
		m.position = event.Position
		m.duration = event.Duration
		return m, m.listenForEvents()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey обрабатывает клавиши управления воспроизведением
func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		// Без загруженного трека переключать нечего
		_ = m.session.Toggle()

	case "n":
		if err := m.session.Next(context.Background()); err != nil {
			return m, nil
		}

	case "p":
		if err := m.session.Previous(context.Background()); err != nil {
			return m, nil
		}

	case "left":
		position, _ := m.session.Progress()
		m.session.Seek(position - seekStep)

	case "right":
		position, _ := m.session.Progress()
		m.session.Seek(position + seekStep)

	case "q", "esc":
		return m, func() tea.Msg { return GoBackMsg{} }
	}

	return m, nil
}

// Close отменяет подписку на события сессии
func (m *Model) Close() {
	m.sub.Cancel()
}

// View отображает модель
func (m *Model) View() string {
	if m.track == nil {
		return infoStyle.Render("Трек не выбран")
	}

	var percent float64
	if m.duration > 0 {
		percent = float64(m.position) / float64(m.duration)
	}

	timing := fmt.Sprintf("%s / %s",
		utils.FormatDuration(m.position),
		utils.FormatDuration(m.duration))

	return fmt.Sprintf("\n%s\n%s\n%s\n\n  %s\n%s\n\n%s\n",
		titleStyle.Render(m.track.Title),
		artistStyle.Render(fmt.Sprintf("%s • %s", m.track.Artist, m.track.Album)),
		infoStyle.Render(fmt.Sprintf("Состояние: %s • %s", m.state, timing)),
		m.progress.ViewAs(percent),
		infoStyle.Render(timing),
		helpStyle.Render("Пробел: пауза • n/p: след./пред. • ←/→: перемотка • q: назад"),
	)
}
