// Package player содержит сессию воспроизведения и порт аудиовыхода
package player

// State - состояние сессии воспроизведения
type State int

// Состояния машины воспроизведения
const (
	StateIdle    State = iota // Трек не загружен
	StateLoaded               // Трек загружен, вывод не запущен
	StatePlaying              // Идет воспроизведение
	StatePaused               // Воспроизведение приостановлено
)

// String возвращает читаемое имя состояния
func (s State) String() string {
	switch s {
	case StateIdle:
		return "ожидание"
	case StateLoaded:
		return "загружен"
	case StatePlaying:
		return "воспроизведение"
	case StatePaused:
		return "пауза"
	default:
		return "неизвестно"
	}
}
