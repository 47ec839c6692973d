// Package dispatch is the event loop of the console: user input arrives as
// events, edits are applied in order, and triggered operations run in their
// own goroutines so the loop keeps accepting input while they wait on the network.
package dispatch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/url-shortener-client/internal/controller"
)

var ErrClosed = errors.New("event loop is shut down")

// Kind of event.
type Kind int

const (
	Edit Kind = iota
	Trigger
)

// Event is one user action.
type Event struct {
	Kind   Kind
	Target controller.Target
	Value  string
	// Done, when set, receives the result of a Trigger event. It must be buffered.
	Done chan<- controller.Result
}

// Handler applies events. *controller.Controller implements it.
type Handler interface {
	Edit(t controller.Target, value string)
	Trigger(ctx context.Context, t controller.Target) controller.Result
}

type Config struct {
	BufferSize int // capacity of the event queue
}

func DefaultConfig() Config {
	return Config{
		BufferSize: 16,
	}
}

// Loop serializes events from any number of producers.
type Loop struct {
	handler  Handler
	events   chan Event
	ctx      context.Context
	cancel   context.CancelFunc
	loopDone chan struct{}
	ops      sync.WaitGroup
	inFlight atomic.Int32

	mu           sync.RWMutex
	closed       bool
	shutdownOnce sync.Once
}

func NewLoop(handler Handler, config Config) *Loop {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultConfig().BufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Loop{
		handler:  handler,
		events:   make(chan Event, config.BufferSize),
		ctx:      ctx,
		cancel:   cancel,
		loopDone: make(chan struct{}),
	}
}

func (l *Loop) Start() {
	log.Debug().Int("buffer", cap(l.events)).Msg("Starting event loop")
	go l.run()
}

func (l *Loop) run() {
	defer close(l.loopDone)

	for ev := range l.events {
		switch ev.Kind {
		case Edit:
			l.handler.Edit(ev.Target, ev.Value)
		case Trigger:
			l.ops.Add(1)
			l.inFlight.Add(1)
			go l.trigger(ev)
		}
	}

	log.Debug().Msg("Event channel closed, event loop exiting")
}

func (l *Loop) trigger(ev Event) {
	defer l.ops.Done()
	defer l.inFlight.Add(-1)

	res := l.handler.Trigger(l.ctx, ev.Target)
	if ev.Done != nil {
		ev.Done <- res
	}
}

// Submit queues an event. It blocks while the queue is full.
func (l *Loop) Submit(ev Event) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return ErrClosed
	}

	select {
	case l.events <- ev:
		return nil
	default:
		log.Warn().
			Str("section", ev.Target.String()).
			Msg("Event queue is full, blocking")
		l.events <- ev
		return nil
	}
}

// Shutdown stops accepting events, applies the queued ones and waits for
// running operations. Operations still running after timeout are cancelled.
func (l *Loop) Shutdown(timeout time.Duration) error {
	var shutdownErr error

	l.shutdownOnce.Do(func() {
		log.Debug().Msg("Shutting down event loop")

		l.mu.Lock()
		l.closed = true
		close(l.events)
		l.mu.Unlock()

		<-l.loopDone

		done := make(chan struct{})
		go func() {
			l.ops.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Debug().Msg("Event loop shut down gracefully")
		case <-time.After(timeout):
			log.Warn().Msg("Operations still running at shutdown, cancelling")
			l.cancel()
			<-done
			shutdownErr = context.DeadlineExceeded
		}
		l.cancel()
	})

	return shutdownErr
}

func (l *Loop) Stats() Stats {
	return Stats{
		QueueSize: len(l.events),
		QueueCap:  cap(l.events),
		InFlight:  int(l.inFlight.Load()),
	}
}

type Stats struct {
	QueueSize int
	QueueCap  int
	InFlight  int
}
