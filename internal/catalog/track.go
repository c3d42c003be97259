// Package catalog содержит модель трека и клиент удаленного каталога
package catalog

import (
	"fmt"
)

// Значения по умолчанию для необязательных полей записи каталога
const (
	UnknownAlbum  = "Unknown Album"
	UnknownArtist = "Unknown Artist"
)

// Track описывает один трек каталога. Записи неизменяемы после загрузки:
// при повторной загрузке каталог заменяется целиком.
type Track struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Album     string `json:"album"`
	Genres    string `json:"genres"`
	Language  string `json:"language"`
	TypeOf    string `json:"type_of"`
	Art       string `json:"art"`       // Ссылка на обложку
	Link      string `json:"link"`      // URL аудиоресурса
	Lyric     string `json:"lyric"`     // Текст трека
	Bitrate   string `json:"bitrate"`   // Битрейт, например "192kbps"
	Rating    int    `json:"rating"`
	Year      int    `json:"year"`
	Playcount int    `json:"playcount"`
	Index     int    `json:"name"` // Порядковый номер в каталоге
}

// Same сравнивает треки по идентификатору. Равенство записей
// определяется только полем ID.
func (t Track) Same(other Track) bool {
	return t.ID == other.ID
}

// Validate проверяет наличие обязательных полей записи.
// Запись без них отбрасывается при загрузке каталога.
func (t Track) Validate() error {
	if t.Link == "" {
		return fmt.Errorf("у трека %q отсутствует ссылка на аудио", t.ID)
	}
	if t.Title == "" {
		return fmt.Errorf("у трека %q отсутствует название", t.ID)
	}
	if t.Index <= 0 {
		return fmt.Errorf("у трека %q отсутствует номер в каталоге", t.ID)
	}
	return nil
}

// withDefaults заполняет необязательные поля значениями по умолчанию
func (t Track) withDefaults() Track {
	if t.ID == "" {
		// Стабильный идентификатор на основе номера в каталоге
		t.ID = fmt.Sprintf("track-%d", t.Index)
	}
	if t.Album == "" {
		t.Album = UnknownAlbum
	}
	if t.Artist == "" {
		t.Artist = UnknownArtist
	}
	return t
}
