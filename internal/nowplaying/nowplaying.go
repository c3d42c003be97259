// Package nowplaying содержит описатель "Сейчас играет" для системного отображения
package nowplaying

import (
	"fmt"
	"time"

	"github.com/hazadus/go-hymnbox/internal/catalog"
)

// Descriptor описывает активный трек для внешнего отображения
// и пульта управления. Заполняется сессией воспроизведения при каждом
// изменении трека, состояния или позиции.
type Descriptor struct {
	Title    string
	Artist   string
	Album    string
	Art      string // Ссылка на обложку (загрузка изображения вне нашей зоны)
	Rate     float64 // 1.0 при воспроизведении, 0.0 на паузе
	Position time.Duration
	Duration time.Duration
}

// FromTrack собирает описатель из записи каталога
func FromTrack(t catalog.Track, playing bool, position, duration time.Duration) Descriptor {
	rate := 0.0
	if playing {
		rate = 1.0
	}
	return Descriptor{
		Title:    t.Title,
		Artist:   t.Artist,
		Album:    t.Album,
		Art:      t.Art,
		Rate:     rate,
		Position: position,
		Duration: duration,
	}
}

// Display принимает описатели "Сейчас играет". Для нас это выход:
// обратно из отображения ничего не читается.
type Display interface {
	// Update обновляет отображаемый описатель
	Update(d Descriptor)
	// Clear очищает отображение (ничего не играет)
	Clear()
}

// NopDisplay - заглушка для путей без системного отображения
type NopDisplay struct{}

// Update ничего не делает
func (NopDisplay) Update(Descriptor) {}

// Clear ничего не делает
func (NopDisplay) Clear() {}

// ConsoleDisplay печатает описатель в консоль (используется командой play)
type ConsoleDisplay struct {
	last Descriptor
}

// NewConsoleDisplay создает консольное отображение
func NewConsoleDisplay() *ConsoleDisplay {
	return &ConsoleDisplay{}
}

// Update печатает блок "Сейчас играет" при смене трека или состояния.
// Обновления одной лишь позиции не выводятся, чтобы не засорять консоль.
func (c *ConsoleDisplay) Update(d Descriptor) {
	sameTrack := c.last.Title == d.Title && c.last.Artist == d.Artist && c.last.Album == d.Album
	sameState := c.last.Rate == d.Rate
	c.last = d

	if sameTrack && sameState {
		return
	}

	icon := "⏸️"
	if d.Rate > 0 {
		icon = "▶️"
	}

	fmt.Printf("\n%s Сейчас играет:\n", icon)
	fmt.Printf("   Исполнитель: %s\n", d.Artist)
	fmt.Printf("   Название: %s\n", d.Title)
	fmt.Printf("   Альбом: %s\n", d.Album)
	fmt.Println()
}

// Clear сбрасывает отображение
func (c *ConsoleDisplay) Clear() {
	c.last = Descriptor{}
}
