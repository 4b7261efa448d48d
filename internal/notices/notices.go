// Package notices carries transient user-facing messages from the dashboards to any listener.
package notices

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/catalog-admin/pkg/enums"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
	evbus "github.com/asaskevich/EventBus"
)

// Topic is the event bus topic every notice is published on.
const Topic = "catalog:notice"

// Notice is one toast-style message about the outcome of an action.
type Notice struct {
	Resource string            `json:"resource"`
	Action   string            `json:"action"`
	Level    enums.NoticeLevel `json:"level"`
	Message  string            `json:"message"`
	At       time.Time         `json:"at"`
}

// Publisher is what dashboards publish through.
type Publisher interface {
	Publish(n Notice)
}

// Bus publishes notices on an in-process event bus.
type Bus struct {
	bus evbus.Bus
	now func() time.Time
}

func NewBus() *Bus {
	return &Bus{bus: evbus.New(), now: time.Now}
}

// Publish stamps the notice and delivers it synchronously to every subscriber.
func (b *Bus) Publish(n Notice) {
	if n.At.IsZero() {
		n.At = b.now().UTC()
	}
	b.bus.Publish(Topic, n)
}

// Subscribe registers a handler for every published notice.
func (b *Bus) Subscribe(fn func(Notice)) error {
	return b.bus.Subscribe(Topic, fn)
}

func (b *Bus) Unsubscribe(fn func(Notice)) error {
	return b.bus.Unsubscribe(Topic, fn)
}

// Recorder keeps the most recent notices for the local API.
type Recorder struct {
	mu    sync.RWMutex
	limit int
	items []Notice
}

func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 50
	}
	return &Recorder{limit: limit}
}

// Record is the bus handler.
func (r *Recorder) Record(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
	if over := len(r.items) - r.limit; over > 0 {
		r.items = append([]Notice(nil), r.items[over:]...)
	}
}

// Recent returns the kept notices, newest first.
func (r *Recorder) Recent() []Notice {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Notice, len(r.items))
	for i, n := range r.items {
		out[len(r.items)-1-i] = n
	}
	return out
}

// LogSubscriber writes every notice through the structured logger.
func LogSubscriber(logg *logger.Logger) func(Notice) {
	return func(n Notice) {
		ctx := logg.WithFields(context.Background(), map[string]any{
			"resource":     n.Resource,
			"action":       n.Action,
			"notice_level": n.Level.String(),
		})
		switch n.Level {
		case enums.NoticeError:
			logg.Error(ctx, n.Message, nil)
		case enums.NoticeWarning:
			logg.Warn(ctx, n.Message)
		default:
			logg.Info(ctx, n.Message)
		}
	}
}

// Discard drops every notice.
type Discard struct{}

func (Discard) Publish(Notice) {}
