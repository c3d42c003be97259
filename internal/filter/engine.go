package filter

import (
	"sort"
	"strings"

	"github.com/hazadus/go-hymnbox/internal/catalog"
)

// Field - категория фильтрации каталога
type Field int

// Поддерживаемые категории
const (
	FieldTypeOf Field = iota
	FieldLanguage
	FieldArtist
)

// String возвращает имя категории
func (f Field) String() string {
	switch f {
	case FieldTypeOf:
		return "Тип"
	case FieldLanguage:
		return "Язык"
	case FieldArtist:
		return "Исполнитель"
	default:
		return "Неизвестно"
	}
}

// fieldValue извлекает значение категории из трека
func fieldValue(t catalog.Track, f Field) string {
	switch f {
	case FieldTypeOf:
		return t.TypeOf
	case FieldLanguage:
		return t.Language
	case FieldArtist:
		return t.Artist
	default:
		return ""
	}
}

// Engine вычисляет видимый список треков из каталога, выборов категорий
// и отложенного поискового запроса. Результаты - чистые функции текущего
// состояния: пересчитываются при каждом обращении, без кэширования.
type Engine struct {
	tracks     []catalog.Track
	selections map[Field]*Selection
	query      string
}

// NewEngine создает движок фильтрации с пустым каталогом
// и выборами в исходном состоянии
func NewEngine() *Engine {
	return &Engine{
		tracks: make([]catalog.Track, 0),
		selections: map[Field]*Selection{
			FieldTypeOf:   NewSelection(),
			FieldLanguage: NewSelection(),
			FieldArtist:   NewSelection(),
		},
	}
}

// SetCatalog заменяет каталог целиком
func (e *Engine) SetCatalog(tracks []catalog.Track) {
	e.tracks = tracks
}

// SetQuery устанавливает отложенный поисковый запрос.
// Сырой (немедленный) текст поиска движка не касается.
func (e *Engine) SetQuery(query string) {
	e.query = query
}

// Query возвращает действующий поисковый запрос
func (e *Engine) Query() string {
	return e.query
}

// Selection возвращает выбор указанной категории
func (e *Engine) Selection(f Field) *Selection {
	return e.selections[f]
}

// Visible возвращает треки, проходящие все активные фильтры,
// в каталожном порядке
func (e *Engine) Visible() []catalog.Track {
	visible := make([]catalog.Track, 0, len(e.tracks))
	for _, t := range e.tracks {
		if e.passes(t) {
			visible = append(visible, t)
		}
	}
	return visible
}

// passes проверяет конъюнкцию всех четырех условий фильтрации
func (e *Engine) passes(t catalog.Track) bool {
	for f, sel := range e.selections {
		if !sel.Matches(fieldValue(t, f)) {
			return false
		}
	}
	return e.matchesQuery(t)
}

// matchesQuery проверяет поисковый фильтр: пустой запрос пропускает все,
// иначе запрос должен быть подстрокой (без учета регистра) альбома,
// исполнителя, названия или жанров
func (e *Engine) matchesQuery(t catalog.Track) bool {
	if e.query == "" {
		return true
	}

	query := strings.ToLower(e.query)
	for _, field := range []string{t.Album, t.Artist, t.Title, t.Genres} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Albums возвращает уникальные альбомы видимого списка,
// отсортированные по возрастанию (для режима просмотра сеткой)
func (e *Engine) Albums() []string {
	seen := make(map[string]struct{})
	albums := make([]string, 0)
	for _, t := range e.Visible() {
		if _, ok := seen[t.Album]; ok {
			continue
		}
		seen[t.Album] = struct{}{}
		albums = append(albums, t.Album)
	}
	sort.Strings(albums)
	return albums
}

// Options возвращает варианты значений категории для меню фильтра:
// уникальные значения по всему каталогу (не по отфильтрованному списку),
// отсортированные по возрастанию, с All в начале. Пустые значения
// в меню не попадают: трек с незаполненной категорией виден только
// при выборе All
func (e *Engine) Options(f Field) []string {
	seen := make(map[string]struct{})
	options := make([]string, 0)
	for _, t := range e.tracks {
		value := fieldValue(t, f)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		options = append(options, value)
	}
	sort.Strings(options)
	return append([]string{All}, options...)
}

// CycleOption переключает категорию на следующий вариант из меню
// (после последнего - снова All) и возвращает новое значение.
// Используется для пошагового перебора фильтра с клавиатуры.
func (e *Engine) CycleOption(f Field) string {
	options := e.Options(f)
	sel := e.Selection(f)

	// Текущий вариант: All либо единственное конкретное значение;
	// множественный выбор перебором сбрасывается к All
	index := 0
	if !sel.IsAll() && sel.Len() == 1 {
		current := sel.Values()[0]
		for i, option := range options {
			if option == current {
				index = i
				break
			}
		}
	}

	next := options[(index+1)%len(options)]
	sel.Reset()
	if next != All {
		sel.Toggle(next)
	}
	return next
}
