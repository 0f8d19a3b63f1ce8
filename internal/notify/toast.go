// Package notify is the per-admin toast queue. Toasts disappear on explicit
// dismissal or after a fixed duration, whichever comes first.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultDuration = 3000 * time.Millisecond

// Toast kinds
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

type Kind string

type Toast struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Sink receives every toast right after it is shown.
type Sink func(Toast)

type Queue struct {
	duration time.Duration
	sink     Sink
	log      *zap.Logger

	mu     sync.Mutex
	toasts []Toast
	timers map[uuid.UUID]*time.Timer
	closed bool
}

func NewQueue(duration time.Duration, sink Sink, log *zap.Logger) *Queue {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Queue{
		duration: duration,
		sink:     sink,
		log:      log,
		timers:   make(map[uuid.UUID]*time.Timer),
	}
}

func (q *Queue) Show(message string, kind Kind) Toast {
	now := time.Now()
	t := Toast{
		ID:        uuid.New(),
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(q.duration),
	}

	q.mu.Lock()
	if q.closed {
		// Nothing is listed any more, but pushed toasts still reach the admin.
		q.mu.Unlock()
		if q.sink != nil {
			q.sink(t)
		}
		return t
	}
	q.toasts = append(q.toasts, t)
	q.timers[t.ID] = time.AfterFunc(q.duration, func() {
		if q.remove(t.ID) {
			q.log.Debug("toast expired", zap.String("toast_id", t.ID.String()))
		}
	})
	q.mu.Unlock()

	if q.sink != nil {
		q.sink(t)
	}
	return t
}

// Dismiss removes a toast before it expires. Unknown ids are ignored.
func (q *Queue) Dismiss(id uuid.UUID) bool {
	return q.remove(id)
}

func (q *Queue) remove(id uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// List returns the visible toasts in the order they were shown.
func (q *Queue) List() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// Close stops all pending expiry timers and drops visible toasts. Later
// toasts are only passed to the sink.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.toasts = nil
	q.closed = true
}
