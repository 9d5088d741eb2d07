// Package notify delivers command outcome messages. The directory core only
// sees the Sink interface; fan-out to logs, Redis or test recorders is wired
// at startup.
package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/staff-directory-api/internal/models"
)

// Sink receives one notification per command outcome. Delivery failures are
// the sink's concern and never fail the command.
type Sink interface {
	Notify(ctx context.Context, n models.Notification)
}

// Handler handles a published notification
type Handler func(context.Context, models.Notification) error

// Bus is a synchronous in-memory publish/subscribe Sink
type Bus struct {
	mu       sync.RWMutex
	next     int
	handlers map[int]Handler
	order    []int
	log      zerolog.Logger
}

// NewBus creates a bus; handler errors are logged to log
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[int]Handler),
		log:      log.With().Str("component", "notify").Logger(),
	}
}

// Subscribe registers a handler and returns a function that removes it
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.handlers[id] = h
	b.order = append(b.order, id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Notify invokes every handler in subscription order. A failing handler does
// not stop the others.
func (b *Bus) Notify(ctx context.Context, n models.Notification) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, n); err != nil {
			b.log.Warn().Err(err).
				Str("command", n.Command).
				Str("kind", string(n.Kind)).
				Msg("Notification handler failed")
		}
	}
}

// LogHandler writes notifications to log, at a level matching their kind
func LogHandler(log zerolog.Logger) Handler {
	return func(_ context.Context, n models.Notification) error {
		var ev *zerolog.Event
		switch n.Kind {
		case models.NotificationError:
			ev = log.Error()
		case models.NotificationWarning:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		ev.Str("kind", string(n.Kind)).
			Str("command", n.Command).
			Strs("record_ids", n.RecordIDs).
			Str("body", n.Body).
			Msg(n.Title)
		return nil
	}
}

type nopSink struct{}

func (nopSink) Notify(context.Context, models.Notification) {}

// Nop is a Sink that drops every notification
var Nop Sink = nopSink{}
