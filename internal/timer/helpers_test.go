// ABOUTME: Test doubles for the countdown controller.
// ABOUTME: Provides a manually driven scheduler, a recording cue and an event recorder.
package timer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/harperreed/intervals/internal/models"
	"github.com/harperreed/intervals/internal/storage"
	"github.com/spf13/afero"
)

// manualScheduler fires scheduled tasks only when Tick is called.
type manualScheduler struct {
	mu      sync.Mutex
	handles []*manualHandle
}

type manualHandle struct {
	fn        func()
	cancelled bool
}

func (h *manualHandle) Cancel() { h.cancelled = true }

func (m *manualScheduler) Every(_ time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := &manualHandle{fn: fn}
	m.handles = append(m.handles, h)
	return h
}

// Tick fires every live task once.
func (m *manualScheduler) Tick() {
	m.mu.Lock()
	live := make([]*manualHandle, 0, len(m.handles))
	for _, h := range m.handles {
		if !h.cancelled {
			live = append(live, h)
		}
	}
	m.mu.Unlock()

	for _, h := range live {
		h.fn()
	}
}

// TickN fires n ticks.
func (m *manualScheduler) TickN(n int) {
	for i := 0; i < n; i++ {
		m.Tick()
	}
}

// Live returns the number of uncancelled tasks.
func (m *manualScheduler) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, h := range m.handles {
		if !h.cancelled {
			n++
		}
	}
	return n
}

// last returns the most recently scheduled task, cancelled or not.
func (m *manualScheduler) last() *manualHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handles[len(m.handles)-1]
}

type recordingCue struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (r *recordingCue) Play(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
	return r.err
}

func (r *recordingCue) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.names)
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Listen(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) Types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

func (r *recorder) Count(t EventType) int {
	n := 0
	for _, got := range r.Types() {
		if got == t {
			n++
		}
	}
	return n
}

var errNoSpeaker = errors.New("no audio device")

const runDay = "2025-06-15"

type fixture struct {
	store *storage.Store
	sched *manualScheduler
	cue   *recordingCue
	rec   *recorder
	ctrl  *Controller
}

// newFixture builds a controller over an in-memory store holding the given
// intervals on runDay.
func newFixture(t *testing.T, intervals ...models.Interval) *fixture {
	t.Helper()

	store := storage.NewStore(storage.NewFileStore(afero.NewMemMapFs(), "/intervals.json"), nil)
	for _, iv := range intervals {
		if _, err := store.AddSeconds(runDay, iv.Kind, iv.DurationSeconds); err != nil {
			t.Fatalf("AddSeconds failed: %v", err)
		}
	}

	f := &fixture{
		store: store,
		sched: &manualScheduler{},
		cue:   &recordingCue{},
		rec:   &recorder{},
	}
	f.ctrl = NewController(store,
		WithScheduler(f.sched),
		WithCue(f.cue),
		WithListener(f.rec.Listen),
	)
	return f
}

func run(secs float64) models.Interval  { return models.NewInterval(models.KindRun, secs) }
func walk(secs float64) models.Interval { return models.NewInterval(models.KindWalk, secs) }
