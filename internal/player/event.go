package player

import (
	"time"

	"github.com/hazadus/go-hymnbox/internal/catalog"
)

// EventType - тип события сессии воспроизведения
type EventType int

// События, которые сессия рассылает подписчикам
const (
	// EventTrackChanged - сменился текущий трек
	EventTrackChanged EventType = iota
	// EventStateChanged - изменилось состояние воспроизведения
	EventStateChanged
	// EventProgress - обновились позиция или длительность
	EventProgress
)

// String возвращает читаемое имя типа события
func (e EventType) String() string {
	switch e {
	case EventTrackChanged:
		return "смена трека"
	case EventStateChanged:
		return "смена состояния"
	case EventProgress:
		return "прогресс"
	default:
		return "неизвестно"
	}
}

// Event - событие сессии воспроизведения
type Event struct {
	Type     EventType
	Track    *catalog.Track // Текущий трек (nil, если ничего не загружено)
	State    State
	Position time.Duration
	Duration time.Duration
}

// Subscription - подписка на события сессии. Покидая экран
// воспроизведения, подписку обязательно отменяют, иначе обработчик
// может сработать по уже неактуальной сессии.
type Subscription struct {
	C      <-chan Event
	cancel func()
}

// Cancel отменяет подписку и закрывает канал событий
func (s *Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
