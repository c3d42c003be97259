package metadata

import (
	"bytes"
	"testing"

	"github.com/hazadus/go-hymnbox/internal/catalog"
)

func TestFromReaderRejectsNonAudio(t *testing.T) {
	probe := NewProbe()

	// Случайные байты не содержат опознаваемых тегов
	reader := bytes.NewReader([]byte("это не аудиофайл"))

	if _, err := probe.FromReader(reader); err == nil {
		t.Error("Ожидалась ошибка чтения тегов из не-аудио данных")
	}
}

func TestEnrichFillsOnlyMissingFields(t *testing.T) {
	track := catalog.Track{
		ID:     "1",
		Title:  "Название из каталога",
		Artist: catalog.UnknownArtist,
		Album:  "Альбом из каталога",
	}
	tags := &TrackTags{
		Artist: "Исполнитель из тегов",
		Album:  "Альбом из тегов",
		Genre:  "folk",
		Year:   1999,
	}

	enriched := Enrich(track, tags)

	// Значение по умолчанию заменяется тегом
	if enriched.Artist != "Исполнитель из тегов" {
		t.Errorf("Ожидался исполнитель из тегов, получено %q", enriched.Artist)
	}
	// Заданное значение каталога не перезаписывается
	if enriched.Album != "Альбом из каталога" {
		t.Errorf("Альбом каталога не должен перезаписываться, получено %q", enriched.Album)
	}
	if enriched.Genres != "folk" {
		t.Errorf("Пустые жанры должны заполняться тегом, получено %q", enriched.Genres)
	}
	if enriched.Year != 1999 {
		t.Errorf("Нулевой год должен заполняться тегом, получено %d", enriched.Year)
	}
}

func TestEnrichWithNilTags(t *testing.T) {
	track := catalog.Track{ID: "1", Title: "Трек"}

	// Отсутствие тегов не меняет запись
	if enriched := Enrich(track, nil); enriched != track {
		t.Errorf("Запись не должна меняться, получено %+v", enriched)
	}
}
