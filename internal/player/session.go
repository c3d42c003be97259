package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hazadus/go-hymnbox/internal/catalog"
	"github.com/hazadus/go-hymnbox/internal/nowplaying"
)

// Ошибки сессии
var (
	ErrNoTrack  = errors.New("трек не загружен")
	ErrNoTracks = errors.New("видимый список треков пуст")
)

// Session - сессия воспроизведения: владеет текущим треком, состоянием
// и позицией, управляет последовательной навигацией по видимому списку.
// Создается один экземпляр на приложение и передается потребителям
// явно, без глобального доступа.
//
// Все изменения состояния проходят через методы сессии под мьютексом.
// События аудиовыхода приходят из его внутреннего потока и
// перекладываются в сессию насосом (pump) - это единственная граница
// между потоками.
type Session struct {
	mutex   sync.Mutex
	output  Output
	display nowplaying.Display

	tracks      []catalog.Track // Видимый список для next/previous
	current     *catalog.Track
	state       State
	position    time.Duration
	duration    time.Duration
	interrupted bool // Пауза вызвана внешним прерыванием

	subs   map[uint64]chan Event
	nextID uint64

	done      chan struct{}
	closeOnce sync.Once
}

// NewSession создает сессию поверх аудиовыхода. Отображению
// "Сейчас играет" сообщается о каждом изменении трека, состояния
// или позиции; nil заменяется заглушкой.
func NewSession(output Output, display nowplaying.Display) *Session {
	if display == nil {
		display = nowplaying.NopDisplay{}
	}

	s := &Session{
		output:  output,
		display: display,
		tracks:  make([]catalog.Track, 0),
		state:   StateIdle,
		subs:    make(map[uint64]chan Event),
		done:    make(chan struct{}),
	}

	// Насос перекладывает события выхода в сессию
	go s.pump()

	return s
}

// SetTracks заменяет видимый список, по которому ходят Next и Previous
func (s *Session) SetTracks(tracks []catalog.Track) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.tracks = tracks
}

// Load загружает трек: отвязывает прежний аудиоресурс и привязывает
// новый по ссылке трека. Если идентификатор не изменился, повторная
// привязка не выполняется. При ошибке привязки сессия остается
// в прежнем состоянии, текущий трек не меняется.
func (s *Session) Load(ctx context.Context, track catalog.Track) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	_, err := s.loadLocked(ctx, track)
	return err
}

// loadLocked выполняет загрузку под мьютексом. Возвращает признак
// того, что ресурс был привязан заново.
func (s *Session) loadLocked(ctx context.Context, track catalog.Track) (bool, error) {
	// Тот же трек - ресурс перепривязывать не нужно
	if s.current != nil && s.current.Same(track) {
		return false, nil
	}

	res := Resource{Link: track.Link, Bitrate: track.Bitrate}
	if err := s.output.Bind(ctx, res); err != nil {
		return false, fmt.Errorf("ошибка загрузки аудиоресурса: %w", err)
	}

	loaded := track
	s.current = &loaded
	s.state = StateLoaded
	s.position = 0
	// Длительность сбрасывается до асинхронного определения выходом
	s.duration = 0

	s.emitLocked(EventTrackChanged)
	s.refreshDisplayLocked()
	return true, nil
}

// Play запускает или возобновляет воспроизведение загруженного трека
func (s *Session) Play() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.playLocked()
}

func (s *Session) playLocked() error {
	if s.current == nil {
		return ErrNoTrack
	}
	if s.state == StatePlaying {
		return nil
	}

	s.output.Play()
	s.state = StatePlaying
	s.interrupted = false

	s.emitLocked(EventStateChanged)
	s.refreshDisplayLocked()
	return nil
}

// Pause приостанавливает воспроизведение. Вне состояния
// воспроизведения ничего не делает.
func (s *Session) Pause() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.pauseLocked(false)
}

func (s *Session) pauseLocked(interrupted bool) {
	if s.state != StatePlaying {
		return
	}

	s.output.Pause()
	s.state = StatePaused
	s.interrupted = interrupted

	s.emitLocked(EventStateChanged)
	s.refreshDisplayLocked()
}

// Toggle переключает паузу и воспроизведение
func (s *Session) Toggle() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state == StatePlaying {
		s.pauseLocked(false)
		return nil
	}
	return s.playLocked()
}

// Next переходит к следующему треку видимого списка (после последнего -
// к первому) и запускает воспроизведение
func (s *Session) Next(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.stepLocked(ctx, 1)
}

// Previous переходит к предыдущему треку видимого списка
// (перед первым - к последнему) и запускает воспроизведение
func (s *Session) Previous(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.stepLocked(ctx, -1)
}

// stepLocked сдвигает индекс по видимому списку с заворотом,
// затем загружает и запускает трек на новой позиции
func (s *Session) stepLocked(ctx context.Context, step int) error {
	count := len(s.tracks)
	if count == 0 {
		return ErrNoTracks
	}

	index := s.currentIndexLocked()
	var next int
	switch {
	case index < 0 && step > 0:
		next = 0
	case index < 0:
		next = count - 1
	default:
		next = (index + step + count) % count
	}

	rebound, err := s.loadLocked(ctx, s.tracks[next])
	if err != nil {
		return err
	}
	if !rebound {
		// Список из одного трека: ресурс тот же, играем с начала
		if err := s.output.Seek(0); err == nil {
			s.position = 0
		}
	}

	return s.playLocked()
}

// currentIndexLocked ищет текущий трек в видимом списке по ID.
// Возвращает -1, если трек не найден (например, отфильтрован).
func (s *Session) currentIndexLocked() int {
	if s.current == nil {
		return -1
	}
	for i := range s.tracks {
		if s.tracks[i].Same(*s.current) {
			return i
		}
	}
	return -1
}

// Seek перемещает позицию воспроизведения загруженного трека.
// Позиция ограничивается отрезком [0, длительность]; без загруженного
// трека вызов игнорируется.
func (s *Session) Seek(position time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.current == nil {
		return
	}

	if position < 0 {
		position = 0
	}
	if s.duration > 0 && position > s.duration {
		position = s.duration
	}

	if err := s.output.Seek(position); err != nil {
		// Выход не поддерживает перемотку для этого ресурса - не фатально
		return
	}
	s.position = position

	s.emitLocked(EventProgress)
	s.refreshDisplayLocked()
}

// State возвращает текущее состояние сессии
func (s *Session) State() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// Current возвращает текущий трек (nil, если ничего не загружено)
func (s *Session) Current() *catalog.Track {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.current
}

// Progress возвращает текущие позицию и длительность
func (s *Session) Progress() (position, duration time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.position, s.duration
}

// Subscribe регистрирует подписчика на события сессии.
// Подписку нужно отменять при уходе с экрана воспроизведения.
func (s *Session) Subscribe() *Subscription {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan Event, 16)
	s.subs[id] = ch

	return &Subscription{
		C: ch,
		cancel: func() {
			s.unsubscribe(id)
		},
	}
}

func (s *Session) unsubscribe(id uint64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if ch, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(ch)
	}
}

// Close останавливает насос событий, закрывает аудиовыход
// и отменяет все подписки
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	err := s.output.Close()

	s.mutex.Lock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.display.Clear()
	s.mutex.Unlock()

	return err
}

// pump перекладывает события аудиовыхода в сессию. Работает до
// закрытия сессии или канала событий выхода.
func (s *Session) pump() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.output.Events():
			if !ok {
				return
			}
			s.handleOutputEvent(event)
		}
	}
}

// handleOutputEvent обрабатывает событие аудиовыхода под мьютексом
func (s *Session) handleOutputEvent(event OutputEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	switch event.Type {
	case OutputPosition:
		if s.current == nil {
			return
		}
		s.position = event.Position
		if event.Duration > 0 {
			s.duration = event.Duration
		}
		s.emitLocked(EventProgress)
		s.refreshDisplayLocked()

	case OutputDuration:
		if s.current == nil {
			return
		}
		// Нулевая длительность допустима: она не определилась, это не фатально
		s.duration = event.Duration
		s.emitLocked(EventProgress)
		s.refreshDisplayLocked()

	case OutputFinished:
		if s.current == nil {
			return
		}
		// Естественное окончание трека равносильно явному Next
		if err := s.stepLocked(context.Background(), 1); err != nil {
			// Продолжать нечем: остаемся на загруженном треке
			s.state = StateLoaded
			s.position = 0
			s.emitLocked(EventStateChanged)
			s.refreshDisplayLocked()
		}

	case OutputInterrupted:
		// Внешнее прерывание принудительно ставит на паузу
		s.pauseLocked(true)

	case OutputResumed:
		if s.interrupted && event.ShouldResume && s.state == StatePaused {
			_ = s.playLocked()
		}
		s.interrupted = false
	}
}

// emitLocked рассылает событие подписчикам без блокировки
func (s *Session) emitLocked(eventType EventType) {
	event := Event{
		Type:     eventType,
		Track:    s.current,
		State:    s.state,
		Position: s.position,
		Duration: s.duration,
	}

	for _, ch := range s.subs {
		select {
		case ch <- event:
		default:
			// Подписчик не успевает - обновление пропускается
		}
	}
}

// refreshDisplayLocked обновляет описатель "Сейчас играет"
func (s *Session) refreshDisplayLocked() {
	if s.current == nil {
		s.display.Clear()
		return
	}
	s.display.Update(nowplaying.FromTrack(
		*s.current,
		s.state == StatePlaying,
		s.position,
		s.duration,
	))
}
