package notifier

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/shashrwatshukla/StockXpert/internal/view"
)

type messages struct {
	mu      sync.Mutex
	visible bool
	text    string
	kind    view.MessageKind
	hides   int
}

func (m *messages) ShowMessage(text string, kind view.MessageKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible, m.text, m.kind = true, text, kind
}

func (m *messages) HideMessage() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = false
	m.hides++
}

func (m *messages) state() (bool, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible, m.text
}

func TestBoard_AutoHide(t *testing.T) {
	sink := &messages{}
	b := NewBoard(sink, 20*time.Millisecond, zerolog.Nop())

	b.Show("Portfolio saved!", view.Success)
	visible, text := sink.state()
	assert.True(t, visible)
	assert.Equal(t, "Portfolio saved!", text)
	assert.Equal(t, view.Success, sink.kind)

	assert.Eventually(t, func() bool {
		v, _ := sink.state()
		return !v
	}, time.Second, 5*time.Millisecond)
}

func TestBoard_NewerMessageSurvivesOlderTimer(t *testing.T) {
	sink := &messages{}
	b := NewBoard(sink, 60*time.Millisecond, zerolog.Nop())

	b.Show("first", view.Info)
	time.Sleep(40 * time.Millisecond)
	b.Show("second", view.Error)

	// The first message's deadline has passed; the second must still show.
	time.Sleep(35 * time.Millisecond)
	visible, text := sink.state()
	assert.True(t, visible)
	assert.Equal(t, "second", text)

	assert.Eventually(t, func() bool {
		v, _ := sink.state()
		return !v
	}, time.Second, 5*time.Millisecond)
}

func TestBoard_HideCancelsTimer(t *testing.T) {
	sink := &messages{}
	b := NewBoard(sink, 20*time.Millisecond, zerolog.Nop())

	b.Show("x", view.Info)
	b.Hide()
	time.Sleep(50 * time.Millisecond)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(t, 1, sink.hides)
}

func TestNewBoard_DefaultDelay(t *testing.T) {
	b := NewBoard(&messages{}, 0, zerolog.Nop())
	assert.Equal(t, DefaultDelay, b.delay)
}
