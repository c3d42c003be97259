// Package debounce содержит откладыватель поискового запроса
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay - задержка перед применением поискового запроса
const DefaultDelay = 300 * time.Millisecond

// Debouncer откладывает сырой текст запроса на фиксированную задержку.
// Новый Submit отменяет еще не сработавший таймер, поэтому в любой
// момент ожидает не больше одного обновления и реализуется только
// последнее значение.
type Debouncer struct {
	mutex   sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	seq     uint64
	value   string
	updates chan string
	closed  bool
}

// NewDebouncer создает откладыватель с указанной задержкой.
// При нулевой задержке используется DefaultDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{
		delay:   delay,
		updates: make(chan string, 1),
	}
}

// Submit планирует применение запроса после задержки.
// Предыдущее запланированное обновление отменяется.
func (d *Debouncer) Submit(query string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.closed {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	// Номер подачи защищает от срабатывания уже отмененного таймера,
	// успевшего войти в realize до отмены
	d.seq++
	seq := d.seq

	d.timer = time.AfterFunc(d.delay, func() {
		d.realize(seq, query)
	})
}

// realize применяет отложенное значение и уведомляет подписчика
func (d *Debouncer) realize(seq uint64, query string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.closed || seq != d.seq {
		return
	}

	d.value = query
	d.timer = nil

	// Непрочитанное уведомление вытесняется свежим: медленный потребитель
	// получает одно уведомление с последним реализованным значением,
	// но никогда не остается без уведомления
	select {
	case <-d.updates:
	default:
	}
	d.updates <- query
}

// Value синхронно возвращает текущее отложенное значение
func (d *Debouncer) Value() string {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.value
}

// Updates возвращает канал реализованных обновлений. Емкость канала
// равна одному: если потребитель не успел прочитать уведомление,
// оно заменяется более свежим, но не теряется
func (d *Debouncer) Updates() <-chan string {
	return d.updates
}

// Close отменяет отложенное обновление и закрывает канал уведомлений
func (d *Debouncer) Close() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.closed {
		return
	}
	d.closed = true

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	close(d.updates)
}
