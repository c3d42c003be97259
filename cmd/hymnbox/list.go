package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-hymnbox/internal/filter"
	"github.com/hazadus/go-hymnbox/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand() *cobra.Command {
	var (
		query     string
		typeOf    []string
		languages []string
		artists   []string
		albums    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracks from the catalog",
		Long:  `Display catalog tracks, optionally narrowed by search query and filters.`,
		Run: func(_ *cobra.Command, _ []string) {
			app.Engine.SetQuery(query)
			toggleAll(app.Engine.Selection(filter.FieldTypeOf), typeOf)
			toggleAll(app.Engine.Selection(filter.FieldLanguage), languages)
			toggleAll(app.Engine.Selection(filter.FieldArtist), artists)

			if albums {
				app.listAlbums()
				return
			}
			app.listTracks()
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "поисковый запрос")
	cmd.Flags().StringSliceVarP(&typeOf, "type", "t", nil, "фильтр по типу")
	cmd.Flags().StringSliceVarP(&languages, "language", "l", nil, "фильтр по языку")
	cmd.Flags().StringSliceVarP(&artists, "artist", "a", nil, "фильтр по исполнителю")
	cmd.Flags().BoolVar(&albums, "albums", false, "показать уникальные альбомы")

	return cmd
}

// toggleAll применяет значения из флага к набору выбранных значений фильтра
func toggleAll(selection *filter.Selection, values []string) {
	for _, value := range values {
		selection.Toggle(value)
	}
}

func (app *Application) listTracks() {
	tracks := app.Engine.Visible()
	if len(tracks) == 0 {
		fmt.Println("📚 Треки не найдены. Проверьте фильтры или настройку catalog_url.")
		return
	}

	fmt.Printf("📚 Найдено треков: %d\n\n", len(tracks))

	// Выводим заголовок таблицы
	fmt.Printf("%-4s %-12s %-25s %-35s %-22s %-10s %-10s\n",
		"№", "ID", "Исполнитель", "Название", "Альбом", "Язык", "Тип")
	fmt.Println(strings.Repeat("-", 125))

	// Выводим каждый трек
	for _, track := range tracks {
		fmt.Printf("%-4d %-12s %-25s %-35s %-22s %-10s %-10s\n",
			track.Index,
			utils.TruncateString(track.ID, 12),
			utils.TruncateString(track.Artist, 25),
			utils.TruncateString(track.Title, 35),
			utils.TruncateString(track.Album, 22),
			utils.TruncateString(track.Language, 10),
			utils.TruncateString(track.TypeOf, 10))
	}

	fmt.Println()
	fmt.Println("💡 Используйте 'hymnbox play [ID]' для воспроизведения трека")
}

func (app *Application) listAlbums() {
	albums := app.Engine.Albums()
	if len(albums) == 0 {
		fmt.Println("📚 Альбомы не найдены.")
		return
	}

	fmt.Printf("💿 Найдено альбомов: %d\n\n", len(albums))
	for _, album := range albums {
		fmt.Printf("   %s\n", album)
	}
}
