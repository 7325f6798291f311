// Package events implements AVM2 event dispatch: the capture/target/
// bubble phases a DisplayObject ancestry runs a dispatched event
// through, and the whitelisted broadcast list the host frame pump uses
// to fan enterFrame/exitFrame/frameConstructed/render out to every
// registered object regardless of display-list membership.
package events

import "github.com/flashcore/avm2/values"

// Event is the payload passed to a listener: a type name plus the two
// independent flags that govern propagation, set at construction and
// queried/mutated by script code through stopPropagation/preventDefault.
type Event struct {
	Type       string
	Bubbles    bool
	Cancelable bool

	target        values.Value
	currentTarget values.Value
	phase         Phase

	stopped          bool
	stoppedImmediate bool
	defaultPrevented bool
}

// Phase identifies which of the three dispatch phases a listener fired
// in, mirroring the EventPhase constants a script-visible Event exposes.
type Phase uint8

const (
	PhaseCapturing Phase = 1
	PhaseAtTarget  Phase = 2
	PhaseBubbling  Phase = 3
)

func NewEvent(typ string, bubbles, cancelable bool) *Event {
	return &Event{Type: typ, Bubbles: bubbles, Cancelable: cancelable}
}

func (e *Event) Target() values.Value        { return e.target }
func (e *Event) CurrentTarget() values.Value { return e.currentTarget }
func (e *Event) EventPhase() Phase           { return e.phase }

// StopPropagation prevents any further listener outside the current
// target from running, but still lets every listener already registered
// on the current target fire (the distinction from StopImmediatePropagation).
func (e *Event) StopPropagation() { e.stopped = true }

// StopImmediatePropagation stops propagation and also skips any
// remaining listener on the current target.
func (e *Event) StopImmediatePropagation() {
	e.stopped = true
	e.stoppedImmediate = true
}

// PreventDefault records that the event's default behavior was
// cancelled; only meaningful when Cancelable is true. DispatchEvent's
// return value reports this.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

func (e *Event) IsDefaultPrevented() bool { return e.defaultPrevented }
