package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-hymnbox/internal/nowplaying"
	"github.com/hazadus/go-hymnbox/internal/player"
	"github.com/hazadus/go-hymnbox/internal/utils"
)

// createPlayCommand создает команду play с привязкой к экземпляру приложения
func (app *Application) createPlayCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "play [trackid]",
		Short: "Play a track by its ID",
		Long:  `Play a catalog track by its ID, with next/previous over the current visible list.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.playByID(ctx, args[0])
		},
	}
}

// enableRawMode включает режим raw для терминала (без буферизации и echo)
func enableRawMode() {
	cmd := exec.Command("stty", "-echo", "-icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run() // Игнорируем ошибку, так как это не критично для работы плеера
}

// disableRawMode восстанавливает нормальный режим терминала
func disableRawMode() {
	cmd := exec.Command("stty", "echo", "icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run() // Игнорируем ошибку, так как это не критично для работы плеера
}

// readSingleChar читает одиночный символ без ожидания Enter
func readSingleChar() (byte, error) {
	buffer := make([]byte, 1)
	_, err := os.Stdin.Read(buffer)
	return buffer[0], err
}

func (app *Application) playByID(ctx context.Context, trackID string) error {
	// Находим трек по ID
	track, err := app.Store.TrackByID(trackID)
	if err != nil {
		return fmt.Errorf("ошибка поиска трека: %w", err)
	}

	// Создаем сессию воспроизведения поверх аудиовыхода
	session := player.NewSession(player.NewBeepOutput(), nowplaying.NewConsoleDisplay())
	defer session.Close()

	// Следующий и предыдущий трек ходят по текущему видимому списку
	session.SetTracks(app.Engine.Visible())

	if err := session.Load(ctx, *track); err != nil {
		return err
	}
	if err := session.Play(); err != nil {
		return err
	}

	fmt.Printf("🎮 Управление:\n")
	fmt.Printf("   [Пробел] - пауза/воспроизведение\n")
	fmt.Printf("   [n] - следующий трек, [p] - предыдущий\n")
	fmt.Printf("   [q] или [Ctrl+C] - остановить и выйти\n")
	fmt.Println()

	// Включаем raw режим для чтения одиночных клавиш
	enableRawMode()
	defer disableRawMode()

	// Создаем канал для обработки сигналов прерывания
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	// Подписываемся на события сессии для отображения прогресса
	sub := session.Subscribe()
	defer sub.Cancel()

	quit := make(chan struct{})

	// Запускаем горутину для обработки клавиш
	go func() {
		for {
			char, err := readSingleChar()
			if err != nil {
				continue
			}

			switch char {
			case ' ', '\n', '\r':
				_ = session.Toggle()
			case 'n':
				_ = session.Next(ctx)
			case 'p':
				_ = session.Previous(ctx)
			case 'q':
				close(quit)
				return
			}
		}
	}()

	// Главный цикл обработки событий
	for {
		select {
		case event := <-sub.C:
			if event.Type == player.EventProgress {
				displayProgress(event)
			}
		case <-quit:
			fmt.Println("\n⏹️  Воспроизведение остановлено пользователем")
			return nil
		case <-interrupt:
			fmt.Println("\n⏹️  Воспроизведение остановлено пользователем")
			return nil
		case <-ctx.Done():
			fmt.Println("\n🚫 Операция отменена")
			return ctx.Err()
		}
	}
}

// displayProgress отображает прогресс воспроизведения
func displayProgress(event player.Event) {
	statusIcon := "⏱️"
	if event.State == player.StatePaused {
		statusIcon = "⏸️"
	}

	if event.Duration > 0 {
		percent := float64(event.Position) / float64(event.Duration) * 100
		fmt.Printf("\r%s  %.1f%% | %s / %s | Состояние: %s",
			statusIcon,
			percent,
			utils.FormatDuration(event.Position),
			utils.FormatDuration(event.Duration),
			event.State)
	} else {
		// Длительность не определена, показываем только текущую позицию
		fmt.Printf("\r%s  %s | Состояние: %s",
			statusIcon,
			utils.FormatDuration(event.Position),
			event.State)
	}
}
