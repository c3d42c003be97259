package player

import (
	"context"
	"time"
)

// OutputEventType - тип события аудиовыхода
type OutputEventType int

// События, которые аудиовыход сообщает сессии. Они приходят из
// внутреннего потока выхода и обрабатываются насосом сессии,
// чтобы не трогать общее состояние из чужого потока.
const (
	// OutputPosition - периодическое обновление позиции
	OutputPosition OutputEventType = iota
	// OutputDuration - длительность ресурса определена (асинхронно)
	OutputDuration
	// OutputFinished - естественное окончание трека
	OutputFinished
	// OutputInterrupted - началось внешнее прерывание (например, звонок)
	OutputInterrupted
	// OutputResumed - прерывание закончилось
	OutputResumed
)

// OutputEvent - событие аудиовыхода
type OutputEvent struct {
	Type         OutputEventType
	Position     time.Duration
	Duration     time.Duration
	ShouldResume bool // Для OutputResumed: платформа просит продолжить
}

// Resource - аудиоресурс для привязки к выходу
type Resource struct {
	Link    string
	Bitrate string // Подсказка для оценки длительности, может быть пустой
}

// Output - порт аудиовыхода. Реализация владеет собственным
// потоком/часами и сообщает о событиях через канал Events.
type Output interface {
	// Bind отвязывает прежний аудиоресурс и привязывает новый.
	// Длительность может определиться позже: выход сообщит о ней
	// событием OutputDuration.
	Bind(ctx context.Context, res Resource) error
	// Play запускает или возобновляет вывод
	Play()
	// Pause приостанавливает вывод
	Pause()
	// Seek перемещает позицию воспроизведения
	Seek(position time.Duration) error
	// Position возвращает текущую позицию
	Position() time.Duration
	// Duration возвращает длительность ресурса (0, пока не определена)
	Duration() time.Duration
	// Events возвращает канал событий выхода
	Events() <-chan OutputEvent
	// Close освобождает ресурсы выхода
	Close() error
}
