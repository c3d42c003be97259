// Package browse содержит модель экрана просмотра каталога для TUI
package browse

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-hymnbox/internal/catalog"
	"github.com/hazadus/go-hymnbox/internal/debounce"
	"github.com/hazadus/go-hymnbox/internal/filter"
	"github.com/hazadus/go-hymnbox/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	filterBarStyle    = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("#888888"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	quitTextStyle     = lipgloss.NewStyle().Margin(1, 0, 2, 4)
)

// TrackSelectedMsg отправляется при выборе трека для воспроизведения
type TrackSelectedMsg struct {
	Track catalog.Track
}

// VisibleChangedMsg отправляется при изменении видимого списка,
// чтобы главная модель передала его сессии воспроизведения
type VisibleChangedMsg struct {
	Tracks []catalog.Track
}

// debouncedQueryMsg несет реализованное отложенное значение поиска
type debouncedQueryMsg string

// trackItem реализует интерфейс list.Item для трека
type trackItem struct {
	track catalog.Track
}

func (i trackItem) FilterValue() string {
	return fmt.Sprintf("%s %s", i.track.Artist, i.track.Title)
}

// albumItem реализует интерфейс list.Item для альбома (режим сетки)
type albumItem string

func (i albumItem) FilterValue() string { return string(i) }

// itemDelegate отображает элементы списка треков и альбомов
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	var str string
	switch item := listItem.(type) {
	case trackItem:
		// Формат строки: Номер | Исполнитель | Название | Альбом
		str = fmt.Sprintf("%-4d %-20s %-40s %s",
			item.track.Index,
			utils.TruncateString(item.track.Artist, 20),
			utils.TruncateString(item.track.Title, 40),
			utils.TruncateString(item.track.Album, 20))
	case albumItem:
		str = fmt.Sprintf("💿 %s", string(item))
	default:
		return
	}

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// Model представляет модель экрана просмотра каталога
type Model struct {
	engine     *filter.Engine
	debouncer  *debounce.Debouncer
	input      textinput.Model
	list       list.Model
	albumsMode bool // Режим просмотра уникальных альбомов
	quitting   bool
}

// NewModel создает новую модель просмотра каталога
func NewModel(engine *filter.Engine, debouncer *debounce.Debouncer) *Model {
	input := textinput.New()
	input.Placeholder = "Поиск по альбому, исполнителю, названию, жанрам..."
	input.Prompt = "🔍 "
	input.CharLimit = 64

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = "Каталог"
	l.SetShowStatusBar(false)
	l.SetShowTitle(true)
	// Встроенную фильтрацию списка не используем: видимость
	// определяет движок фильтрации
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	m := &Model{
		engine:    engine,
		debouncer: debouncer,
		input:     input,
		list:      l,
	}
	m.reload()

	return m
}

// Init инициализирует модель и запускает прослушивание отложенного поиска
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.listenForQuery(), m.visibleChanged())
}

// reload перестраивает элементы списка из движка фильтрации
func (m *Model) reload() {
	if m.albumsMode {
		albums := m.engine.Albums()
		items := make([]list.Item, len(albums))
		for i, album := range albums {
			items[i] = albumItem(album)
		}
		m.list.Title = "Альбомы"
		m.list.SetItems(items)
		return
	}

	visible := m.engine.Visible()
	items := make([]list.Item, len(visible))
	for i, t := range visible {
		items[i] = trackItem{track: t}
	}
	m.list.Title = "Каталог"
	m.list.SetItems(items)
}

// visibleChanged сообщает главной модели новый видимый список
func (m *Model) visibleChanged() tea.Cmd {
	visible := m.engine.Visible()
	return func() tea.Msg {
		return VisibleChangedMsg{Tracks: visible}
	}
}

// listenForQuery ждет реализованное отложенное значение поиска
func (m *Model) listenForQuery() tea.Cmd {
	updates := m.debouncer.Updates()
	return func() tea.Msg {
		query, ok := <-updates
		if !ok {
			return nil
		}
		return debouncedQueryMsg(query)
	}
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 6) // Место для поиска, фильтров и справки
		return m, nil

	case debouncedQueryMsg:
		// Сообщение только будит модель: применяется значение,
		// синхронно прочитанное из откладывателя. Содержимое сообщения
		// могло устареть, пока лежало в очереди
		m.engine.SetQuery(m.debouncer.Value())
		m.reload()
		return m, tea.Batch(m.listenForQuery(), m.visibleChanged())

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateSearchInput(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateSearchInput обрабатывает ввод в строке поиска
func (m *Model) updateSearchInput(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Сырой текст уходит в откладыватель, не в движок
	m.debouncer.Submit(m.input.Value())
	return m, cmd
}

// handleKey обрабатывает горячие клавиши экрана просмотра
func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "/":
		m.input.Focus()
		return m, textinput.Blink

	case "t":
		m.engine.CycleOption(filter.FieldTypeOf)
		m.reload()
		return m, m.visibleChanged()

	case "l":
		m.engine.CycleOption(filter.FieldLanguage)
		m.reload()
		return m, m.visibleChanged()

	case "a":
		m.engine.CycleOption(filter.FieldArtist)
		m.reload()
		return m, m.visibleChanged()

	case "g":
		// Переключение между списком треков и сеткой альбомов
		m.albumsMode = !m.albumsMode
		m.reload()
		return m, nil

	case "enter":
		return m.handleSelect()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSelect обрабатывает выбор элемента списка
func (m *Model) handleSelect() (*Model, tea.Cmd) {
	selected := m.list.SelectedItem()
	if selected == nil {
		return m, nil
	}

	switch item := selected.(type) {
	case trackItem:
		track := item.track
		return m, func() tea.Msg {
			return TrackSelectedMsg{Track: track}
		}

	case albumItem:
		// Выбор альбома сужает поиск сразу, без задержки: это не набор
		// текста. Submit держит значение откладывателя согласованным
		album := string(item)
		m.albumsMode = false
		m.input.SetValue(album)
		m.debouncer.Submit(album)
		m.engine.SetQuery(album)
		m.reload()
		return m, m.visibleChanged()
	}

	return m, nil
}

// Close останавливает откладыватель поиска
func (m *Model) Close() {
	m.debouncer.Close()
}

// View отображает модель
func (m *Model) View() string {
	if m.quitting {
		return quitTextStyle.Render("До свидания!")
	}

	filters := filterBarStyle.Render(fmt.Sprintf(
		"Тип: %s • Язык: %s • Исполнитель: %s",
		strings.Join(m.engine.Selection(filter.FieldTypeOf).Values(), ","),
		strings.Join(m.engine.Selection(filter.FieldLanguage).Values(), ","),
		strings.Join(m.engine.Selection(filter.FieldArtist).Values(), ","),
	))

	help := helpStyle.Render(
		"Enter: воспроизвести • /: поиск • t/l/a: фильтры • g: альбомы • q: выход",
	)

	return fmt.Sprintf("%s\n%s\n%s\n%s", m.input.View(), filters, m.list.View(), help)
}
