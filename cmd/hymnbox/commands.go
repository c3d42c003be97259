package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hymnbox",
		Short: "A command line player for a remote music catalog",
		Long:  `A command line tool to browse, filter and play tracks from a remote music catalog.`,
	}

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createListCommand())
	rootCmd.AddCommand(app.createPlayCommand(ctx))
	rootCmd.AddCommand(app.createInfoCommand(ctx))
	rootCmd.AddCommand(app.createTUICommand())

	return rootCmd
}
