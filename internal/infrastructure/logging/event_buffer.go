package logging

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
)

const defaultBufferLimit = 1000

// Level identifies the severity of a buffered entry.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Entry is a single buffered log event.
type Entry struct {
	Level  Level
	Msg    string
	Fields []interface{}
	ctx    context.Context
}

// Field returns the value recorded for key, if any.
func (e Entry) Field(key string) (interface{}, bool) {
	for i := 0; i+1 < len(e.Fields); i += 2 {
		if k, ok := e.Fields[i].(string); ok && k == key {
			return e.Fields[i+1], true
		}
	}
	return nil, false
}

// EventBuffer stores log events emitted before the primary logger is ready,
// or captures them for inspection in tests. It keeps at most limit entries,
// dropping the oldest first.
type EventBuffer struct {
	mu     sync.Mutex
	limit  int
	events []Entry
}

// NewEventBuffer creates a buffer with the provided capacity (defaults to 1000).
func NewEventBuffer(limit int) *EventBuffer {
	if limit <= 0 {
		limit = defaultBufferLimit
	}
	return &EventBuffer{
		limit:  limit,
		events: make([]Entry, 0, limit),
	}
}

func (b *EventBuffer) add(entry Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.events) == b.limit {
		copy(b.events, b.events[1:])
		b.events[len(b.events)-1] = entry
		return
	}
	b.events = append(b.events, entry)
}

// Entries returns a copy of the buffered events in emission order.
func (b *EventBuffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Entry, len(b.events))
	copy(out, b.events)
	return out
}

// Flush replays buffered events using the provided logger, preserving ordering.
func (b *EventBuffer) Flush(delegate ports.Logger) {
	if delegate == nil {
		return
	}
	b.mu.Lock()
	events := make([]Entry, len(b.events))
	copy(events, b.events)
	b.events = b.events[:0]
	b.mu.Unlock()

	for _, entry := range events {
		switch entry.Level {
		case LevelDebug:
			delegate.Debug(entry.ctx, entry.Msg, entry.Fields...)
		case LevelWarn:
			delegate.Warn(entry.ctx, entry.Msg, entry.Fields...)
		case LevelError:
			delegate.Error(entry.ctx, entry.Msg, entry.Fields...)
		default:
			delegate.Info(entry.ctx, entry.Msg, entry.Fields...)
		}
	}
}
