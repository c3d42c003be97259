package main

import (
	"github.com/spf13/cobra"

	"github.com/hazadus/go-hymnbox/internal/nowplaying"
	"github.com/hazadus/go-hymnbox/internal/player"
	"github.com/hazadus/go-hymnbox/internal/tui"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch interactive terminal user interface for browsing, filtering and playing tracks.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.launchTUI()
		},
	}
}

func (app *Application) launchTUI() error {
	// Сессия воспроизведения живет столько же, сколько TUI.
	// Дисплей не нужен: состояние рисует экран плеера
	session := player.NewSession(player.NewBeepOutput(), nowplaying.NopDisplay{})
	defer session.Close()

	session.SetTracks(app.Engine.Visible())

	tuiApp := tui.NewApp(app.Engine, session, app.Config.SearchDelay())

	return tuiApp.Run()
}
