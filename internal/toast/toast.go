// Package toast keeps short-lived notifications that dismiss themselves.
package toast

import (
	"sync"
	"time"
)

const (
	DefaultDwell = 3 * time.Second
	DefaultFade  = 300 * time.Millisecond
)

// State is the lifecycle stage of a toast.
type State int

const (
	Visible State = iota
	Fading
	Removed
)

func (s State) String() string {
	switch s {
	case Visible:
		return "visible"
	case Fading:
		return "fading"
	default:
		return "removed"
	}
}

// Toast is a snapshot of one notification.
type Toast struct {
	ID      uint64
	Kind    string
	Message string
	State   State
}

// Observer is called on every state change, outside of the board lock.
type Observer func(Toast)

// Board holds the active toasts.
type Board struct {
	mu        sync.Mutex
	dwell     time.Duration
	fade      time.Duration
	nextID    uint64
	toasts    []*Toast
	timers    map[uint64]*time.Timer
	observers []Observer
	closed    bool
}

// NewBoard creates a board. Non-positive durations fall back to the defaults.
func NewBoard(dwell, fade time.Duration, observers ...Observer) *Board {
	if dwell <= 0 {
		dwell = DefaultDwell
	}
	if fade <= 0 {
		fade = DefaultFade
	}
	return &Board{
		dwell:     dwell,
		fade:      fade,
		timers:    make(map[uint64]*time.Timer),
		observers: observers,
	}
}

// Show adds a toast. It starts fading after the dwell time and is removed after the fade.
func (b *Board) Show(kind, message string) Toast {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return Toast{Kind: kind, Message: message, State: Removed}
	}

	b.nextID++
	t := &Toast{ID: b.nextID, Kind: kind, Message: message, State: Visible}
	b.toasts = append(b.toasts, t)
	id := t.ID
	b.timers[id] = time.AfterFunc(b.dwell, func() { b.startFade(id) })
	snapshot := *t
	b.mu.Unlock()

	b.notify(snapshot)
	return snapshot
}

func (b *Board) startFade(id uint64) {
	b.mu.Lock()
	t := b.find(id)
	if t == nil || b.closed {
		b.mu.Unlock()
		return
	}
	t.State = Fading
	b.timers[id] = time.AfterFunc(b.fade, func() { b.remove(id) })
	snapshot := *t
	b.mu.Unlock()

	b.notify(snapshot)
}

func (b *Board) remove(id uint64) {
	b.mu.Lock()
	var snapshot Toast
	found := false
	for i, t := range b.toasts {
		if t.ID == id {
			t.State = Removed
			snapshot = *t
			found = true
			b.toasts = append(b.toasts[:i], b.toasts[i+1:]...)
			break
		}
	}
	delete(b.timers, id)
	b.mu.Unlock()

	if found {
		b.notify(snapshot)
	}
}

func (b *Board) find(id uint64) *Toast {
	for _, t := range b.toasts {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (b *Board) notify(t Toast) {
	for _, o := range b.observers {
		o(t)
	}
}

// Active returns the toasts not yet removed, oldest first.
func (b *Board) Active() []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Toast, 0, len(b.toasts))
	for _, t := range b.toasts {
		out = append(out, *t)
	}
	return out
}

// Close stops all pending timers and drops the active toasts without notifying.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for id, timer := range b.timers {
		timer.Stop()
		delete(b.timers, id)
	}
	b.toasts = nil
}
