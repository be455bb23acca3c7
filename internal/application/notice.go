package application

import (
	"context"
	"sync"
	"time"
)

// Notice levels, matching the toast kinds the screens show.
const (
	NoticeSuccess = "success"
	NoticeWarning = "warning"
	NoticeError   = "error"
)

// Notice is a transient message shown once to whoever views the screen next.
type Notice struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier queues notices per screen until they are drained or expire.
type Notifier interface {
	Push(ctx context.Context, screen string, n Notice) error
	Drain(ctx context.Context, screen string) ([]Notice, error)
}

// MemoryNotifier keeps notices in process. It is used when Redis is not configured.
type MemoryNotifier struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	queue map[string][]Notice
}

func NewMemoryNotifier(ttl time.Duration) *MemoryNotifier {
	return &MemoryNotifier{ttl: ttl, now: time.Now, queue: map[string][]Notice{}}
}

func (m *MemoryNotifier) Push(_ context.Context, screen string, n Notice) error {
	if n.At.IsZero() {
		n.At = m.now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue[screen] = append(m.queue[screen], n)
	return nil
}

func (m *MemoryNotifier) Drain(_ context.Context, screen string) ([]Notice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	queued := m.queue[screen]
	delete(m.queue, screen)
	out := make([]Notice, 0, len(queued))
	cutoff := m.now().Add(-m.ttl)
	for _, n := range queued {
		if m.ttl > 0 && n.At.Before(cutoff) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
