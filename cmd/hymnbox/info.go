package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-hymnbox/internal/metadata"
	"github.com/hazadus/go-hymnbox/internal/utils"
)

// createInfoCommand создает команду info с привязкой к экземпляру приложения
func (app *Application) createInfoCommand(ctx context.Context) *cobra.Command {
	var probeTags bool

	cmd := &cobra.Command{
		Use:   "info [trackid]",
		Short: "Show catalog record for a track",
		Long:  `Display the catalog record of a track, optionally compared with tags embedded in the audio file.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.showTrackInfo(ctx, args[0], probeTags)
		},
	}

	cmd.Flags().BoolVar(&probeTags, "tags", false, "прочитать теги из аудиофайла")

	return cmd
}

func (app *Application) showTrackInfo(ctx context.Context, trackID string, probeTags bool) error {
	track, err := app.Store.TrackByID(trackID)
	if err != nil {
		return fmt.Errorf("ошибка поиска трека: %w", err)
	}

	fmt.Printf("🎵 Запись каталога:\n")
	fmt.Printf("   ID: %s\n", track.ID)
	fmt.Printf("   Номер: %d\n", track.Index)
	fmt.Printf("   Исполнитель: %s\n", track.Artist)
	fmt.Printf("   Название: %s\n", track.Title)
	fmt.Printf("   Альбом: %s\n", track.Album)
	fmt.Printf("   Жанры: %s\n", track.Genres)
	fmt.Printf("   Язык: %s\n", track.Language)
	fmt.Printf("   Тип: %s\n", track.TypeOf)
	if track.Year > 0 {
		fmt.Printf("   Год: %d\n", track.Year)
	}
	if track.Bitrate != "" {
		fmt.Printf("   Битрейт: %s\n", track.Bitrate)
	}
	if track.Lyric != "" {
		fmt.Printf("   Текст: %s\n", utils.TruncateString(track.Lyric, 60))
	}

	if !probeTags {
		return nil
	}

	// Читаем теги, встроенные в аудиофайл, и сравниваем с каталогом
	fmt.Printf("\n🔎 Читаем теги из аудиофайла...\n")

	probe := metadata.NewProbe()
	tags, err := probe.FromURL(ctx, track.Link)
	if err != nil {
		return fmt.Errorf("ошибка чтения тегов: %w", err)
	}

	fmt.Printf("   Исполнитель: %s\n", tags.Artist)
	fmt.Printf("   Название: %s\n", tags.Title)
	fmt.Printf("   Альбом: %s\n", tags.Album)
	fmt.Printf("   Жанр: %s\n", tags.Genre)
	if tags.Year > 0 {
		fmt.Printf("   Год: %d\n", tags.Year)
	}

	// Показываем, как выглядела бы запись, дополненная тегами
	enriched := metadata.Enrich(*track, tags)
	if enriched != *track {
		fmt.Printf("\n💡 Каталог можно дополнить из тегов: %s - %s (%s)\n",
			enriched.Artist, enriched.Title, enriched.Album)
	}

	return nil
}
