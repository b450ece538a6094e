package field

import (
	"sync"
	"time"
)

// FrameFunc is invoked once per display frame with the frame timestamp.
type FrameFunc func(now time.Time)

// Scheduler registers a callback to run once before the next repaint.
type Scheduler interface {
	RequestFrame(fn FrameFunc) (cancel func())
}

// FrameQueue is a Scheduler drained by the host's own frame loop: a Bubble
// Tea tick message, an Ebitengine Update, or a test.
type FrameQueue struct {
	mu      sync.Mutex
	pending FrameFunc
	seq     uint64
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

func (q *FrameQueue) RequestFrame(fn FrameFunc) func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seq++
	id := q.seq
	q.pending = fn
	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		if q.seq == id {
			q.pending = nil
		}
	}
}

// Pending reports whether a frame has been requested and not yet fired.
func (q *FrameQueue) Pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending != nil
}

// Fire runs the pending callback, if any. The callback may request the
// next frame; that request is kept for the following Fire.
func (q *FrameQueue) Fire(now time.Time) bool {
	q.mu.Lock()
	fn := q.pending
	q.pending = nil
	q.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(now)
	return true
}

// Animator is the self-rescheduling frame loop around a Field.
type Animator struct {
	field *Field
	sched Scheduler

	mu      sync.Mutex
	cancel  func()
	last    time.Time
	running bool
	paused  bool
	frames  uint64
}

func NewAnimator(f *Field, s Scheduler) *Animator {
	return &Animator{field: f, sched: s}
}

// Start requests the first frame. It does nothing when the field has no
// surface or the loop is already running.
func (a *Animator) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running || a.field == nil || !a.field.Available() || a.sched == nil {
		return
	}
	a.running = true
	a.last = time.Time{}
	a.cancel = a.sched.RequestFrame(a.frame)
}

// Stop cancels the pending frame request. Safe to call more than once.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return
	}
	a.running = false
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// SetPaused freezes the simulation while frames keep being scheduled.
func (a *Animator) SetPaused(p bool) {
	a.mu.Lock()
	a.paused = p
	a.mu.Unlock()
}

func (a *Animator) Paused() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paused
}

func (a *Animator) Frames() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frames
}

// Resize reseeds the field synchronously for new viewport dimensions.
func (a *Animator) Resize(width, height float64) {
	a.field.Seed(width, height)
}

func (a *Animator) frame(now time.Time) {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	elapsed := 0.0
	if !a.last.IsZero() {
		elapsed = now.Sub(a.last).Seconds()
	}
	a.last = now
	paused := a.paused
	a.frames++
	a.mu.Unlock()

	if paused {
		a.field.Redraw()
	} else {
		a.field.Frame(elapsed)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		a.cancel = a.sched.RequestFrame(a.frame)
	}
}
