// Package notifier drives the single user-visible message box.
package notifier

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shashrwatshukla/StockXpert/internal/view"
)

// DefaultDelay is how long a message stays up.
const DefaultDelay = 5 * time.Second

// Board shows one message at a time and hides it after a delay. A newer
// message restarts the delay; an older timer never hides a newer message.
type Board struct {
	sink  view.MessageSink
	delay time.Duration
	log   zerolog.Logger

	mu    sync.Mutex
	seq   uint64
	timer *time.Timer
}

// NewBoard creates a Board. A non-positive delay uses DefaultDelay.
func NewBoard(sink view.MessageSink, delay time.Duration, log zerolog.Logger) *Board {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Board{
		sink:  sink,
		delay: delay,
		log:   log.With().Str("component", "notifier").Logger(),
	}
}

// Show displays text and schedules it to be hidden.
func (b *Board) Show(text string, kind view.MessageKind) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	seq := b.seq
	if b.timer != nil {
		b.timer.Stop()
	}
	b.sink.ShowMessage(text, kind)
	b.log.Debug().Str("kind", string(kind)).Str("text", text).Msg("message shown")

	b.timer = time.AfterFunc(b.delay, func() { b.expire(seq) })
}

// Hide removes the current message immediately.
func (b *Board) Hide() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.sink.HideMessage()
}

func (b *Board) expire(seq uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.seq {
		return
	}
	b.timer = nil
	b.sink.HideMessage()
}

// Close stops any pending hide.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
