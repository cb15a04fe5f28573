// ABOUTME: Countdown controller that walks a date's intervals one second at a time.
// ABOUTME: Owns run state, the tick handle, the sequence snapshot and transition events.
package timer

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/intervals/internal/models"
)

// TickPeriod is the fixed countdown granularity.
const TickPeriod = time.Second

// CueBeep is the logical name of the transition sound.
const CueBeep = "beep"

// State is the controller's run state.
type State int

const (
	Idle State = iota
	Running
	Paused
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// SequenceSource supplies interval sequences and clears them on reset.
// storage.Store satisfies it.
type SequenceSource interface {
	Get(dateKey string) models.Sequence
	Clear(dateKey string)
}

// Cue plays a named sound. Implementations must not block.
type Cue interface {
	Play(name string) error
}

// Status is a point-in-time view of the controller.
type Status struct {
	State      State
	DateKey    string
	RunDateKey string
	Index      int
	Remaining  float64
	Total      int
	Current    models.Interval
}

// IsRunning reports whether the countdown is actively ticking.
func (s Status) IsRunning() bool {
	return s.State == Running
}

// Controller runs the countdown for one selected date at a time.
//
// Every transition holds op while it changes state and while its events
// and cue are delivered, so listeners see transitions in the order they
// happened and nothing is delivered after a Reset or Stop.
type Controller struct {
	op        sync.Mutex
	mu        sync.Mutex
	source    SequenceSource
	sched     Scheduler
	cue       Cue
	logger    *log.Logger
	listeners []Listener
	period    time.Duration

	state     State
	dateKey   string
	runDate   string
	snapshot  models.Sequence
	index     int
	remaining float64

	handle Handle
	gen    uint64
	done   chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler replaces the default ticker-based scheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithCue sets the sound played on transitions.
func WithCue(cue Cue) Option {
	return func(c *Controller) { c.cue = cue }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithListener subscribes l to events.
func WithListener(l Listener) Option {
	return func(c *Controller) { c.listeners = append(c.listeners, l) }
}

// NewController returns an Idle controller reading sequences from source.
func NewController(source SequenceSource, opts ...Option) *Controller {
	done := make(chan struct{})
	close(done)

	c := &Controller{
		source: source,
		sched:  TickerScheduler{},
		period: TickPeriod,
		done:   done,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// Start selects dateKey and begins counting down its intervals.
// It is a no-op, returning false, when the sequence is empty or a run is
// already in progress. A run in progress keeps its snapshot either way.
func (c *Controller) Start(dateKey string) bool {
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	c.dateKey = dateKey
	ok := c.startLocked()
	ev := c.pending(ok, EventStarted)
	c.mu.Unlock()

	c.emit(ev)
	return ok
}

func (c *Controller) startLocked() bool {
	if c.state == Running || c.state == Paused {
		return false
	}

	seq := c.source.Get(c.dateKey)
	if len(seq) == 0 {
		c.logger.Debug("start ignored: no intervals", "date", c.dateKey)
		return false
	}

	c.snapshot = seq.Clone()
	c.runDate = c.dateKey
	c.index = 0
	c.remaining = c.snapshot[0].DurationSeconds
	c.state = Running
	c.done = make(chan struct{})
	c.scheduleLocked()

	c.logger.Debug("run started", "date", c.runDate, "intervals", len(c.snapshot))
	return true
}

// Toggle pauses a running countdown, resumes a paused one, and otherwise
// starts the last selected date. It mirrors a single Start/Pause button.
func (c *Controller) Toggle() State {
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	var ev []Event
	switch c.state {
	case Running:
		c.pauseLocked()
		ev = c.pending(true, EventPaused)
	case Paused:
		c.resumeLocked()
		ev = c.pending(true, EventResumed)
	default:
		ev = c.pending(c.startLocked(), EventStarted)
	}
	state := c.state
	c.mu.Unlock()

	c.emit(ev)
	return state
}

// Pause stops ticking and keeps all run state.
func (c *Controller) Pause() bool {
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	ok := c.state == Running
	if ok {
		c.pauseLocked()
	}
	ev := c.pending(ok, EventPaused)
	c.mu.Unlock()

	c.emit(ev)
	return ok
}

func (c *Controller) pauseLocked() {
	c.cancelLocked()
	c.state = Paused
}

// Resume continues a paused countdown from where it stopped.
func (c *Controller) Resume() bool {
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	ok := c.state == Paused
	if ok {
		c.resumeLocked()
	}
	ev := c.pending(ok, EventResumed)
	c.mu.Unlock()

	c.emit(ev)
	return ok
}

func (c *Controller) resumeLocked() {
	c.state = Running
	c.scheduleLocked()
}

// Reset cancels any run, clears the selected date's saved intervals, and
// returns to Idle. A tick already delivering its events finishes first.
func (c *Controller) Reset() {
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	c.cancelLocked()
	c.source.Clear(c.dateKey)
	c.idleLocked()
	ev := c.pending(true, EventReset)
	c.mu.Unlock()

	c.emit(ev)
	c.closeDone()
}

// Stop cancels any run and returns to Idle without touching saved intervals.
func (c *Controller) Stop() {
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	c.cancelLocked()
	c.idleLocked()
	ev := c.pending(true, EventStopped)
	c.mu.Unlock()

	c.emit(ev)
	c.closeDone()
}

func (c *Controller) idleLocked() {
	c.state = Idle
	c.index = 0
	c.remaining = 0
	c.snapshot = nil
	c.runDate = ""
}

// Status returns the current state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

// Done returns a channel closed when the current run completes, is reset
// or is stopped. It closes only after the final events have been delivered
// and the completion cue has been played. It is already closed while no run
// is in progress.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// tick consumes one second of the current interval. The tick that exhausts
// an interval also moves to the next one, so an N-second interval spans
// N ticks. gen identifies the schedule that fired; ticks
// from a cancelled schedule are dropped.
func (c *Controller) tick(gen uint64) {
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	if gen != c.gen || c.state != Running {
		c.mu.Unlock()
		return
	}

	if c.remaining > 0 {
		c.remaining--
	}

	var ev []Event
	cue, finished := false, false
	switch {
	case c.remaining > 0:
		ev = c.pending(true, EventTick)
	case c.index < len(c.snapshot)-1:
		c.index++
		c.remaining = c.snapshot[c.index].DurationSeconds
		ev = c.pending(true, EventIntervalChanged)
		cue = true
	default:
		c.cancelLocked()
		last := c.statusLocked()
		c.state = Complete
		c.index = 0
		c.remaining = 0
		last.State = Complete
		ev = []Event{{Type: EventSequenceComplete, Status: last}}
		cue, finished = true, true
	}
	c.mu.Unlock()

	c.emit(ev)
	if cue {
		c.playCue()
	}
	if finished {
		c.closeDone()
	}
}

func (c *Controller) scheduleLocked() {
	c.gen++
	gen := c.gen
	c.handle = c.sched.Every(c.period, func() { c.tick(gen) })
}

// cancelLocked invalidates the current schedule before any state changes so
// an in-flight tick cannot act on the state that follows.
func (c *Controller) cancelLocked() {
	if c.handle != nil {
		c.handle.Cancel()
		c.handle = nil
	}
	c.gen++
}

func (c *Controller) closeDone() {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}

func (c *Controller) statusLocked() Status {
	st := Status{
		State:      c.state,
		DateKey:    c.dateKey,
		RunDateKey: c.runDate,
		Index:      c.index,
		Remaining:  c.remaining,
		Total:      len(c.snapshot),
	}
	if c.index < len(c.snapshot) {
		st.Current = c.snapshot[c.index]
	}
	return st
}

func (c *Controller) pending(ok bool, t EventType) []Event {
	if !ok {
		return nil
	}
	return []Event{{Type: t, Status: c.statusLocked()}}
}

func (c *Controller) emit(events []Event) {
	if len(events) == 0 {
		return
	}
	c.mu.Lock()
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, ev := range events {
		c.logger.Debug("timer event", "event", ev.Type, "index", ev.Status.Index, "remaining", ev.Status.Remaining)
		for _, l := range listeners {
			l(ev)
		}
	}
}

func (c *Controller) playCue() {
	if c.cue == nil {
		return
	}
	if err := c.cue.Play(CueBeep); err != nil {
		c.logger.Warn("playing cue failed", "cue", CueBeep, "err", err)
	}
}
