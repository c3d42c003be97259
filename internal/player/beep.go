package player

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"github.com/hazadus/go-hymnbox/internal/streaming"
)

const (
	// Буфер потокового чтения аудио
	streamBufferSize = 256 * 1024
	// Период обновления позиции
	positionInterval = 500 * time.Millisecond
)

// BeepOutput - аудиовыход на библиотеке beep. Ресурс читается
// потоково по HTTP и декодируется как MP3; вывод идет через speaker,
// который работает на собственных часах и сообщает о событиях
// через канал Events.
type BeepOutput struct {
	mutex  sync.Mutex
	events chan OutputEvent

	ctx    context.Context
	cancel context.CancelFunc

	isInitialized bool
	paused        bool

	// Растет при каждой привязке: старые колбэки не стреляют.
	// Атомарный, потому что колбэк завершения читает его из потока
	// speaker без мьютекса
	generation atomic.Uint64

	streamer      beep.StreamSeekCloser
	format        beep.Format
	ctrl          *beep.Ctrl
	reader        *streaming.Reader
	duration      time.Duration
	monitorCancel context.CancelFunc
}

// NewBeepOutput создает аудиовыход
func NewBeepOutput() *BeepOutput {
	ctx, cancel := context.WithCancel(context.Background())
	return &BeepOutput{
		events: make(chan OutputEvent, 16),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Events возвращает канал событий выхода
func (b *BeepOutput) Events() <-chan OutputEvent {
	return b.events
}

// Bind отвязывает прежний ресурс и привязывает новый.
// Вывод остается на паузе до вызова Play.
func (b *BeepOutput) Bind(ctx context.Context, res Resource) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	// Новый ресурс читаем до отвязки старого: при ошибке
	// текущее воспроизведение не разрушается
	reader, err := streaming.NewReader(ctx, res.Link, streamBufferSize)
	if err != nil {
		return fmt.Errorf("ошибка создания потокового ридера: %w", err)
	}

	streamer, format, err := mp3.Decode(reader)
	if err != nil {
		reader.Close()
		return fmt.Errorf("ошибка декодирования MP3: %w", err)
	}

	// Инициализируем speaker один раз
	if !b.isInitialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/5)); err != nil {
			streamer.Close()
			reader.Close()
			return fmt.Errorf("ошибка инициализации динамиков: %w", err)
		}
		b.isInitialized = true
	}

	b.unbindLocked()

	b.streamer = streamer
	b.format = format
	b.reader = reader
	b.paused = true
	b.ctrl = &beep.Ctrl{
		Streamer: streamer,
		Paused:   true,
	}

	generation := b.generation.Add(1)

	// Длительность: из декодера, иначе оценка по битрейту и размеру
	b.duration = b.resolveDurationLocked(res.Bitrate)
	b.send(OutputEvent{Type: OutputDuration, Duration: b.duration})

	speaker.Play(beep.Seq(b.ctrl, beep.Callback(func() {
		b.finished(generation)
	})))

	// Монитор позиции для этой привязки
	monitorCtx, monitorCancel := context.WithCancel(b.ctx)
	b.monitorCancel = monitorCancel
	go b.monitorPosition(monitorCtx, generation)

	return nil
}

// finished вызывается колбэком завершения из потока speaker, который
// в этот момент держит внутренний мьютекс speaker. Брать здесь b.mutex
// нельзя: остальные методы берут мьютексы в обратном порядке, и выйдет
// взаимная блокировка. Только атомарное чтение и неблокирующая отправка.
func (b *BeepOutput) finished(generation uint64) {
	if b.generation.Load() == generation {
		b.send(OutputEvent{Type: OutputFinished})
	}
}

// resolveDurationLocked определяет длительность привязанного ресурса.
// Нулевая длительность означает, что определить ее не удалось.
func (b *BeepOutput) resolveDurationLocked(bitrate string) time.Duration {
	if length := b.streamer.Len(); length > 0 {
		return b.format.SampleRate.D(length)
	}

	// Декодер не знает длину потока: оцениваем по битрейту
	kbps := parseBitrate(bitrate)
	size := b.reader.ContentLength()
	if kbps <= 0 || size <= 0 {
		return 0
	}
	seconds := float64(size*8) / float64(kbps*1000)
	return time.Duration(seconds * float64(time.Second))
}

// parseBitrate разбирает битрейт записи каталога вида "192kbps" или "192"
func parseBitrate(bitrate string) int {
	trimmed := strings.ToLower(strings.TrimSpace(bitrate))
	trimmed = strings.TrimSuffix(trimmed, "kbps")
	trimmed = strings.TrimSuffix(trimmed, "k")
	trimmed = strings.TrimSpace(trimmed)

	kbps, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0
	}
	return kbps
}

// Play запускает или возобновляет вывод
func (b *BeepOutput) Play() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.ctrl == nil {
		return
	}

	speaker.Lock()
	b.paused = false
	b.ctrl.Paused = false
	speaker.Unlock()
}

// Pause приостанавливает вывод
func (b *BeepOutput) Pause() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.ctrl == nil {
		return
	}

	speaker.Lock()
	b.paused = true
	b.ctrl.Paused = true
	speaker.Unlock()
}

// Seek перемещает позицию воспроизведения. Если поток не
// поддерживает перемотку, возвращает ошибку декодера.
func (b *BeepOutput) Seek(position time.Duration) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.streamer == nil {
		return ErrNoTrack
	}

	speaker.Lock()
	err := b.streamer.Seek(b.format.SampleRate.N(position))
	speaker.Unlock()

	if err != nil {
		return fmt.Errorf("ошибка перемотки: %w", err)
	}
	return nil
}

// Position возвращает текущую позицию
func (b *BeepOutput) Position() time.Duration {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.streamer == nil {
		return 0
	}

	speaker.Lock()
	position := b.format.SampleRate.D(b.streamer.Position())
	speaker.Unlock()
	return position
}

// Duration возвращает длительность привязанного ресурса
func (b *BeepOutput) Duration() time.Duration {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.duration
}

// Close освобождает ресурсы выхода. Канал событий не закрывается:
// колбэк speaker может сработать позже, отправка в закрытый канал
// привела бы к панике.
func (b *BeepOutput) Close() error {
	b.cancel()

	b.mutex.Lock()
	b.unbindLocked()
	b.mutex.Unlock()

	return nil
}

// unbindLocked отвязывает текущий ресурс (вызывается под мьютексом)
func (b *BeepOutput) unbindLocked() {
	if b.monitorCancel != nil {
		b.monitorCancel()
		b.monitorCancel = nil
	}

	if b.ctrl != nil {
		speaker.Clear()
		b.ctrl = nil
	}

	if b.streamer != nil {
		b.streamer.Close()
		b.streamer = nil
	}

	if b.reader != nil {
		b.reader.Close()
		b.reader = nil
	}

	b.generation.Add(1)
	b.duration = 0
	b.paused = false
}

// monitorPosition периодически сообщает позицию воспроизведения
func (b *BeepOutput) monitorPosition(ctx context.Context, generation uint64) {
	ticker := time.NewTicker(positionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.mutex.Lock()
			if b.streamer == nil || b.generation.Load() != generation {
				b.mutex.Unlock()
				return
			}

			speaker.Lock()
			position := b.format.SampleRate.D(b.streamer.Position())
			paused := b.paused
			speaker.Unlock()

			duration := b.duration
			b.mutex.Unlock()

			if paused {
				continue
			}

			b.send(OutputEvent{
				Type:     OutputPosition,
				Position: position,
				Duration: duration,
			})
		}
	}
}

// send отправляет событие без блокировки
func (b *BeepOutput) send(event OutputEvent) {
	select {
	case b.events <- event:
	default:
		// Потребитель не успевает - событие пропускается
	}
}
