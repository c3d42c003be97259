// Package metadata предоставляет чтение встроенных тегов аудиоресурса
package metadata

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dhowden/tag"

	"github.com/hazadus/go-hymnbox/internal/catalog"
	"github.com/hazadus/go-hymnbox/internal/streaming"
)

// Буфер потокового чтения при скачивании ресурса для чтения тегов
const probeBufferSize = 256 * 1024

// TrackTags - встроенные теги аудиофайла
type TrackTags struct {
	Artist string
	Title  string
	Album  string
	Genre  string
	Year   int
}

// Probe читает встроенные теги аудиоресурсов
type Probe struct{}

// NewProbe создает новый считыватель тегов
func NewProbe() *Probe {
	return &Probe{}
}

// FromURL скачивает ресурс во временный файл и читает его теги.
// Тегам нужен произвольный доступ, поэтому поток не годится напрямую.
func (p *Probe) FromURL(ctx context.Context, url string) (*TrackTags, error) {
	reader, err := streaming.NewReader(ctx, url, probeBufferSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия ресурса: %w", err)
	}
	defer reader.Close()

	tempFile, err := os.CreateTemp("", "hymnbox-*.mp3")
	if err != nil {
		return nil, fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, reader); err != nil {
		return nil, fmt.Errorf("ошибка скачивания ресурса: %w", err)
	}

	if _, err := tempFile.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("ошибка чтения временного файла: %w", err)
	}

	return p.FromReader(tempFile)
}

// FromReader читает теги из io.ReadSeeker
func (p *Probe) FromReader(reader io.ReadSeeker) (*TrackTags, error) {
	meta, err := tag.ReadFrom(reader)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения тегов: %w", err)
	}

	return &TrackTags{
		Artist: meta.Artist(),
		Title:  meta.Title(),
		Album:  meta.Album(),
		Genre:  meta.Genre(),
		Year:   meta.Year(),
	}, nil
}

// Enrich заполняет незаполненные поля записи каталога встроенными
// тегами ресурса. Уже заданные значения записи не перезаписываются.
func Enrich(track catalog.Track, tags *TrackTags) catalog.Track {
	if tags == nil {
		return track
	}

	if (track.Artist == "" || track.Artist == catalog.UnknownArtist) && tags.Artist != "" {
		track.Artist = tags.Artist
	}
	if (track.Album == "" || track.Album == catalog.UnknownAlbum) && tags.Album != "" {
		track.Album = tags.Album
	}
	if track.Genres == "" && tags.Genre != "" {
		track.Genres = tags.Genre
	}
	if track.Year == 0 && tags.Year != 0 {
		track.Year = tags.Year
	}
	return track
}
