package filter

import (
	"reflect"
	"testing"

	"github.com/hazadus/go-hymnbox/internal/catalog"
)

// testCatalog возвращает небольшой каталог для проверки фильтрации
func testCatalog() []catalog.Track {
	return []catalog.Track{
		{ID: "1", Title: "Шма Исраэль", Artist: "Хор", Album: "A", TypeOf: "Hymn", Language: "Hebrew", Genres: "traditional", Index: 1},
		{ID: "2", Title: "Morning Song", Artist: "Solo", Album: "B", TypeOf: "Song", Language: "English", Genres: "pop", Index: 2},
		{ID: "3", Title: "Эвену шалом", Artist: "Хор", Album: "A", TypeOf: "Hymn", Language: "Hebrew", Genres: "folk", Index: 3},
	}
}

func TestVisibleWithDefaultSelections(t *testing.T) {
	engine := NewEngine()
	engine.SetCatalog(testCatalog())

	// Без фильтров виден весь каталог в каталожном порядке
	visible := engine.Visible()
	if len(visible) != 3 {
		t.Fatalf("Ожидалось 3 трека, получено %d", len(visible))
	}
	for i, want := range []string{"1", "2", "3"} {
		if visible[i].ID != want {
			t.Errorf("Позиция %d: ожидался ID %q, получен %q", i, want, visible[i].ID)
		}
	}
}

func TestVisibleCategoryConjunction(t *testing.T) {
	// Сценарий из каталога: type_of={"Hymn"}, language={All}, пустой запрос
	engine := NewEngine()
	engine.SetCatalog([]catalog.Track{
		{ID: "1", Title: "Первый", TypeOf: "Hymn", Language: "Hebrew", Album: "A", Index: 1},
		{ID: "2", Title: "Второй", TypeOf: "Song", Language: "English", Album: "B", Index: 2},
	})
	engine.Selection(FieldTypeOf).Toggle("Hymn")

	visible := engine.Visible()
	if len(visible) != 1 {
		t.Fatalf("Ожидался 1 трек, получено %d", len(visible))
	}
	if visible[0].ID != "1" {
		t.Errorf("Ожидался трек с ID %q, получен %q", "1", visible[0].ID)
	}
}

func TestVisibleAllConditionsMustHold(t *testing.T) {
	engine := NewEngine()
	engine.SetCatalog(testCatalog())

	// Категория проходит, но запрос не совпадает - трек не виден
	engine.Selection(FieldTypeOf).Toggle("Hymn")
	engine.SetQuery("morning")

	if len(engine.Visible()) != 0 {
		t.Error("Трек должен проходить все условия одновременно")
	}
}

func TestVisibleQuerySearchesMetadataFields(t *testing.T) {
	engine := NewEngine()
	engine.SetCatalog(testCatalog())

	cases := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2", "3"}},        // Пустой запрос пропускает все
		{"MORNING", []string{"2"}},           // Название, без учета регистра
		{"хор", []string{"1", "3"}},          // Исполнитель
		{"b", []string{"2"}},                 // Альбом
		{"folk", []string{"3"}},              // Жанры
		{"нет такого", []string{}},           // Нет совпадений
	}

	for _, tc := range cases {
		engine.SetQuery(tc.query)
		got := make([]string, 0)
		for _, track := range engine.Visible() {
			got = append(got, track.ID)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Запрос %q: ожидалось %v, получено %v", tc.query, tc.want, got)
		}
	}
}

func TestSentinelNeverShrinksResult(t *testing.T) {
	engine := NewEngine()
	engine.SetCatalog(testCatalog())

	// Видимый список при конкретном выборе
	engine.Selection(FieldTypeOf).Toggle("Hymn")
	narrow := len(engine.Visible())

	// Возврат к All не может уменьшить результат
	engine.Selection(FieldTypeOf).Toggle(All)
	wide := len(engine.Visible())

	if wide < narrow {
		t.Errorf("Выбор All уменьшил результат: было %d, стало %d", narrow, wide)
	}
	if wide != 3 {
		t.Errorf("С All должен быть виден весь каталог, получено %d", wide)
	}
}

func TestAlbumsSortedAndUnique(t *testing.T) {
	engine := NewEngine()
	engine.SetCatalog([]catalog.Track{
		{ID: "1", Title: "Т1", Album: "B", Index: 1},
		{ID: "2", Title: "Т2", Album: "A", Index: 2},
		{ID: "3", Title: "Т3", Album: "B", Index: 3},
		{ID: "4", Title: "Т4", Album: "C", Index: 4},
	})

	albums := engine.Albums()
	if !reflect.DeepEqual(albums, []string{"A", "B", "C"}) {
		t.Errorf("Ожидались альбомы [A B C], получено %v", albums)
	}
}

func TestAlbumsFollowVisibleList(t *testing.T) {
	engine := NewEngine()
	engine.SetCatalog(testCatalog())
	engine.SetQuery("morning")

	// Альбомы выводятся из видимого списка, а не из всего каталога
	albums := engine.Albums()
	if !reflect.DeepEqual(albums, []string{"B"}) {
		t.Errorf("Ожидался только альбом B, получено %v", albums)
	}
}

func TestOptionsBuiltFromWholeCatalog(t *testing.T) {
	engine := NewEngine()
	engine.SetCatalog(testCatalog())

	// Фильтры не влияют на варианты меню: они строятся по всему каталогу
	engine.Selection(FieldTypeOf).Toggle("Hymn")
	engine.SetQuery("morning")

	options := engine.Options(FieldTypeOf)
	if !reflect.DeepEqual(options, []string{All, "Hymn", "Song"}) {
		t.Errorf("Ожидались варианты [%s Hymn Song], получено %v", All, options)
	}

	languages := engine.Options(FieldLanguage)
	if !reflect.DeepEqual(languages, []string{All, "English", "Hebrew"}) {
		t.Errorf("Ожидались варианты [%s English Hebrew], получено %v", All, languages)
	}
}

func TestOptionsSkipEmptyValues(t *testing.T) {
	engine := NewEngine()
	engine.SetCatalog([]catalog.Track{
		{ID: "1", Title: "Первый", TypeOf: "Hymn", Language: "Hebrew", Index: 1},
		{ID: "2", Title: "Второй", TypeOf: "", Language: "English", Index: 2},
	})

	// Незаполненная категория не становится пунктом меню:
	// такой трек виден только при выборе All
	options := engine.Options(FieldTypeOf)
	if !reflect.DeepEqual(options, []string{All, "Hymn"}) {
		t.Errorf("Ожидались варианты [%s Hymn], получено %v", All, options)
	}

	engine.Selection(FieldTypeOf).Toggle("Hymn")
	if len(engine.Visible()) != 1 {
		t.Errorf("Трек без типа не должен проходить конкретный фильтр")
	}

	engine.Selection(FieldTypeOf).Toggle(All)
	if len(engine.Visible()) != 2 {
		t.Errorf("При выборе %s должны быть видны оба трека", All)
	}
}

func TestCycleOptionWalksThroughMenu(t *testing.T) {
	engine := NewEngine()
	engine.SetCatalog(testCatalog())

	// Варианты типа: [All, Hymn, Song] - перебор идет по кругу
	expected := []string{"Hymn", "Song", All, "Hymn"}
	for _, want := range expected {
		got := engine.CycleOption(FieldTypeOf)
		if got != want {
			t.Errorf("Ожидался вариант %q, получен %q", want, got)
		}
	}

	// После перебора выбран ровно один вариант
	sel := engine.Selection(FieldTypeOf)
	if sel.Len() != 1 || !sel.Contains("Hymn") {
		t.Errorf("Ожидался выбор {Hymn}, получено %v", sel.Values())
	}
}

func TestVisibleDeterministicRecomputation(t *testing.T) {
	engine := NewEngine()
	engine.SetCatalog(testCatalog())
	engine.Selection(FieldLanguage).Toggle("Hebrew")
	engine.SetQuery("хор")

	// Повторные вычисления при неизменном состоянии дают одинаковый результат
	first := engine.Visible()
	second := engine.Visible()
	if !reflect.DeepEqual(first, second) {
		t.Error("Повторное вычисление видимого списка дало другой результат")
	}
}
