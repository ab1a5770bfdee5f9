// Package gesture tells a tap from a press-and-hold.
//
//	Idle --press--> Pressing --timer--> LongPressed --release--> Idle
//	                   |
//	                   +--release (before timer)--> Idle, tap
//
// The hold timer is the only resource a Detector owns. It is stopped on every
// way out of Pressing: release, leave, a new press, and Close.
package gesture

import (
	"time"
)

// Defaults
const (
	DefaultThreshold = 500 * time.Millisecond
	DefaultGuard     = 100 * time.Millisecond
)

// Phase is the detector state
type Phase int

const (
	Idle Phase = iota
	Pressing
	LongPressed
)

func (p Phase) String() string {
	switch p {
	case Pressing:
		return "pressing"
	case LongPressed:
		return "long-pressed"
	default:
		return "idle"
	}
}

// Stopper cancels a scheduled callback.
type Stopper interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// TimeScheduler schedules with time.AfterFunc.
func TimeScheduler() Scheduler { return timeScheduler{} }

// Outcome is what a release means
type Outcome struct {
	Tap    bool   // press was short: perform the tap action
	Target string // what was pressed
}

// Detector is the long-press state machine. All methods except the timer
// callback must be called from one goroutine. The timer callback only calls
// notify with the press token; the owner routes it back and calls Fire.
type Detector struct {
	Threshold time.Duration
	Guard     time.Duration

	sched  Scheduler
	notify func(token uint64)
	now    func() time.Time

	phase         Phase
	target        string
	token         uint64
	timer         Stopper
	suppressUntil time.Time
}

// New returns an idle detector. notify is invoked from the timer goroutine
// when a hold reaches threshold.
func New(threshold time.Duration, sched Scheduler, notify func(token uint64)) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if sched == nil {
		sched = TimeScheduler()
	}
	return &Detector{
		Threshold: threshold,
		Guard:     DefaultGuard,
		sched:     sched,
		notify:    notify,
		now:       time.Now,
	}
}

// SetClock replaces the time source used for the tap guard window.
func (d *Detector) SetClock(now func() time.Time) { d.now = now }

// Phase returns the current state.
func (d *Detector) Phase() Phase { return d.phase }

// Target returns what is being pressed, or "" when idle.
func (d *Detector) Target() string { return d.target }

// Armed reports whether a hold timer is live.
func (d *Detector) Armed() bool { return d.timer != nil }

// Press starts a press on target and arms the hold timer. A press that is
// still in progress is abandoned first.
func (d *Detector) Press(target string) uint64 {
	d.stopTimer()
	d.token++
	d.phase = Pressing
	d.target = target

	token := d.token
	notify := d.notify
	d.timer = d.sched.AfterFunc(d.Threshold, func() {
		if notify != nil {
			notify(token)
		}
	})
	return token
}

// Fire handles the hold timer for token. It returns the pressed target when
// the hold becomes a long press.
func (d *Detector) Fire(token uint64) (string, bool) {
	if token != d.token || d.phase != Pressing {
		return "", false
	}
	d.timer = nil
	d.phase = LongPressed
	return d.target, true
}

// Release ends the press. A release before the threshold is a tap; a
// release after a long press is not, and opens the tap guard window.
func (d *Detector) Release() Outcome {
	switch d.phase {
	case Pressing:
		target := d.target
		d.reset()
		return Outcome{Tap: true, Target: target}
	case LongPressed:
		target := d.target
		d.reset()
		d.suppressUntil = d.now().Add(d.Guard)
		return Outcome{Target: target}
	default:
		return Outcome{}
	}
}

// Leave cancels the press because the pointer left the target. It never
// produces a tap.
func (d *Detector) Leave() {
	if d.phase == LongPressed {
		d.suppressUntil = d.now().Add(d.Guard)
	}
	d.reset()
}

// AllowTap reports whether a tap-equivalent action may run now. Taps are
// swallowed during a press and inside the guard window after a long press.
func (d *Detector) AllowTap() bool {
	if d.phase != Idle {
		return false
	}
	return !d.now().Before(d.suppressUntil)
}

// Close stops the timer and returns to Idle.
func (d *Detector) Close() {
	d.reset()
	d.suppressUntil = time.Time{}
}

func (d *Detector) reset() {
	d.stopTimer()
	d.token++
	d.phase = Idle
	d.target = ""
}

func (d *Detector) stopTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
